package entity

import "encoding/json"

// TemplateType is the discriminant of a structured template.
type TemplateType string

const (
	TemplateGeneric   TemplateType = "generic"
	TemplateButton    TemplateType = "button"
	TemplateList      TemplateType = "list"
	TemplateOpenGraph TemplateType = "open_graph"
	TemplateReceipt   TemplateType = "receipt"
)

// ImageAspectRatio of generic template images.
type ImageAspectRatio string

const (
	ImageAspectRatioHorizontal ImageAspectRatio = "horizontal"
	ImageAspectRatioSquare     ImageAspectRatio = "square"
)

// ListTopElementStyle of list templates.
type ListTopElementStyle string

const (
	ListTopElementLarge   ListTopElementStyle = "large"
	ListTopElementCompact ListTopElementStyle = "compact"
)

// Template is one of GenericTemplate, ButtonTemplate, ListTemplate,
// OpenGraphTemplate or ReceiptTemplate.
type Template interface {
	TemplateType() TemplateType
	isTemplate()
}

// Element is an item of a generic or list template.
type Element struct {
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	DefaultAction *DefaultAction `json:"default_action,omitempty"`
	Buttons       []Button       `json:"buttons,omitempty"`
}

type GenericTemplate struct {
	Sharable         bool             `json:"sharable,omitempty"`
	ImageAspectRatio ImageAspectRatio `json:"image_aspect_ratio,omitempty"`
	Elements         []Element        `json:"elements"`
}

type ButtonTemplate struct {
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons"`
}

type ListTemplate struct {
	TopElementStyle ListTopElementStyle `json:"top_element_style,omitempty"`
	Elements        []Element           `json:"elements"`
	Buttons         []Button            `json:"buttons,omitempty"`
}

// OpenGraphElement renders a link preview for URL.
type OpenGraphElement struct {
	URL     string   `json:"url"`
	Buttons []Button `json:"buttons,omitempty"`
}

type OpenGraphTemplate struct {
	Elements []OpenGraphElement `json:"elements"`
}

type ReceiptElement struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

type Address struct {
	Street1    string `json:"street_1"`
	Street2    string `json:"street_2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

type PaymentSummary struct {
	Subtotal     float64 `json:"subtotal,omitempty"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	TotalTax     float64 `json:"total_tax,omitempty"`
	TotalCost    float64 `json:"total_cost"`
}

type PaymentAdjustment struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type ReceiptTemplate struct {
	Sharable      bool                `json:"sharable,omitempty"`
	RecipientName string              `json:"recipient_name"`
	MerchantName  string              `json:"merchant_name,omitempty"`
	OrderNumber   string              `json:"order_number"`
	Currency      string              `json:"currency"`
	PaymentMethod string              `json:"payment_method"`
	Timestamp     string              `json:"timestamp,omitempty"`
	OrderURL      string              `json:"order_url,omitempty"`
	Elements      []ReceiptElement    `json:"elements,omitempty"`
	Address       *Address            `json:"address,omitempty"`
	Summary       PaymentSummary      `json:"summary"`
	Adjustments   []PaymentAdjustment `json:"adjustments,omitempty"`
}

func (GenericTemplate) TemplateType() TemplateType   { return TemplateGeneric }
func (ButtonTemplate) TemplateType() TemplateType    { return TemplateButton }
func (ListTemplate) TemplateType() TemplateType      { return TemplateList }
func (OpenGraphTemplate) TemplateType() TemplateType { return TemplateOpenGraph }
func (ReceiptTemplate) TemplateType() TemplateType   { return TemplateReceipt }

func (GenericTemplate) isTemplate()   {}
func (ButtonTemplate) isTemplate()    {}
func (ListTemplate) isTemplate()      {}
func (OpenGraphTemplate) isTemplate() {}
func (ReceiptTemplate) isTemplate()   {}

func (t GenericTemplate) MarshalJSON() ([]byte, error) {
	type template GenericTemplate
	return json.Marshal(struct {
		TemplateType TemplateType `json:"template_type"`
		template
	}{TemplateGeneric, template(t)})
}

func (t ButtonTemplate) MarshalJSON() ([]byte, error) {
	type template ButtonTemplate
	return json.Marshal(struct {
		TemplateType TemplateType `json:"template_type"`
		template
	}{TemplateButton, template(t)})
}

func (t ListTemplate) MarshalJSON() ([]byte, error) {
	type template ListTemplate
	return json.Marshal(struct {
		TemplateType TemplateType `json:"template_type"`
		template
	}{TemplateList, template(t)})
}

func (t OpenGraphTemplate) MarshalJSON() ([]byte, error) {
	type template OpenGraphTemplate
	return json.Marshal(struct {
		TemplateType TemplateType `json:"template_type"`
		template
	}{TemplateOpenGraph, template(t)})
}

func (t ReceiptTemplate) MarshalJSON() ([]byte, error) {
	type template ReceiptTemplate
	return json.Marshal(struct {
		TemplateType TemplateType `json:"template_type"`
		template
	}{TemplateReceipt, template(t)})
}
