package models

import (
	"errors"
	"fmt"
)

var (
	ErrInput            = errors.New("input error")
	ErrMissingIdentity  = fmt.Errorf("%w: missing caller identity", ErrInput)
	ErrModelUnavailable = errors.New("model unavailable")
	ErrClassification   = errors.New("classification failed")
	ErrStorage          = errors.New("storage error")
)

// Caller-facing messages. Classification causes never leave the service.
const (
	MsgInputRequired    = "يرجى إدخال نص المشكلة"
	MsgIdentityRequired = "معرف المستخدم مطلوب"
	MsgModelUnavailable = "النموذج غير متاح حالياً"
	MsgPredictionFailed = "حدث خطأ أثناء التصنيف، حاول مرة أخرى"
	MsgStorageFailed    = "تعذر حفظ أو قراءة السجل"
	MsgHistoryCleared   = "تم مسح السجل"
)

// PublicMessage maps an error from the service layer to the message a caller
// may see.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingIdentity):
		return MsgIdentityRequired
	case errors.Is(err, ErrInput):
		return MsgInputRequired
	case errors.Is(err, ErrModelUnavailable):
		return MsgModelUnavailable
	case errors.Is(err, ErrStorage):
		return MsgStorageFailed
	default:
		return MsgPredictionFailed
	}
}
