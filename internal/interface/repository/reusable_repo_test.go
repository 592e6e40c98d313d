package repository

import (
	"context"
	"os"
	"sync"
	"testing"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/domain/repository"
	"messenger-client/internal/infrastructure/persistence"

	"github.com/google/uuid"
)

func TestMemoryReusableRepository(t *testing.T) {
	testReusableRepository(t, NewMemoryReusableRepository(), "")
}

func TestMemoryReusableRepositoryConcurrentSaves(t *testing.T) {
	repo := NewMemoryReusableRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"a1", "a2", "a3", "a4"} {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Save(ctx, &entity.ReusableAttachment{URL: "u1", AttachmentID: id}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.AttachmentID == "" {
		t.Fatalf("Get(u1) = %+v, want one of the saved records", got)
	}
}

func TestMongoReusableRepository(t *testing.T) {
	dsn := os.Getenv("MONGODB_DSN")
	if dsn == "" {
		t.Skip("MONGODB_DSN is not set")
	}

	ctx := context.Background()
	store, err := persistence.NewMongoStore(ctx, persistence.MongoOptions{URI: dsn, Database: "messenger_test"})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close(ctx)

	repo, err := NewMongoReusableRepository(ctx, store.Database)
	if err != nil {
		t.Fatal(err)
	}
	testReusableRepository(t, repo, uuid.NewString()+"/")
}

func TestGormReusableRepository(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	db, err := persistence.NewPostgresDB(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}

	repo, err := NewGormReusableRepository(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	testReusableRepository(t, repo, uuid.NewString()+"/")
}

// testReusableRepository runs the lookup/record contract against repo. Keys
// are prefixed so shared databases don't leak state between runs.
func testReusableRepository(t *testing.T, repo repository.ReusableAttachmentRepository, prefix string) {
	t.Helper()
	ctx := context.Background()
	u1, u2 := prefix+"https://cdn.example.com/logo.png", prefix+"https://cdn.example.com/never.png"

	if err := repo.Save(ctx, &entity.ReusableAttachment{URL: u1, AttachmentID: "a1"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, u1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.AttachmentID != "a1" {
		t.Fatalf("Get(u1) = %+v, want a1", got)
	}

	// Unknown key.
	got, err = repo.Get(ctx, u2)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Get(u2) = %+v, want nil", got)
	}

	// Saving the same pair again changes nothing observable.
	if err := repo.Save(ctx, &entity.ReusableAttachment{URL: u1, AttachmentID: "a1"}); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, u1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.AttachmentID != "a1" {
		t.Fatalf("Get(u1) after repeat save = %+v, want a1", got)
	}

	// Last write wins.
	if err := repo.Save(ctx, &entity.ReusableAttachment{URL: u1, AttachmentID: "a2"}); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, u1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.AttachmentID != "a2" {
		t.Fatalf("Get(u1) after overwrite = %+v, want a2", got)
	}
}
