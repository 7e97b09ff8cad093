package domain

// DeliveryKind selects between a private message and a public reply.
type DeliveryKind string

const (
	DeliveryDM    DeliveryKind = "dm"
	DeliveryReply DeliveryKind = "reply"
)

// RenderRequest asks the notification sink to render a localized template
// and deliver it. The engine picks the template and its ordered arguments;
// it never formats user-facing text itself.
type RenderRequest struct {
	Platform    Platform
	Kind        DeliveryKind
	RecipientID string
	ChatID      string
	ReplyTo     string
	Locale      string
	TemplateKey string
	Args        []any
}
