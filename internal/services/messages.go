package services

import (
	"errors"
	"fmt"

	"github.com/minbar-sermons-api/internal/validation"
)

const (
	msgGenerationFailed = "فشل توليد الخطبة. قد يكون هناك مشكلة في الشبكة أو في الرد من الخادم. يرجى المحاولة مرة أخرى."
	msgMalformed        = "فشل توليد الخطبة بسبب خطأ في تنسيق الرد من الخادم. نرجو المحاولة مرة أخرى. (تفاصيل الخطأ: %s)"
	msgInProgress       = "جاري توليد خطبة أخرى. يرجى الانتظار حتى تكتمل."
	msgPreviewFailed    = "فشل في جلب معاينة الآيات. يرجى المحاولة مرة أخرى."
	msgSurahNotFound    = "لم يتم العثور على اسم السورة."
	msgSelectSurah      = "يرجى اختيار سورة أولاً."
)

// UserMessage returns the text shown to the user for a generation failure.
// Format failures include the diagnostic to aid reporting.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrGenerationInProgress) {
		return msgInProgress
	}
	if errors.Is(err, ErrInvalidRequest) {
		return msgSelectSurah
	}

	var parseErr *validation.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf(msgMalformed, parseErr.Error())
	}
	var schemaErr *validation.SchemaError
	if errors.As(err, &schemaErr) {
		return fmt.Sprintf(msgMalformed, schemaErr.Error())
	}
	// transport failures and anything unexpected
	return msgGenerationFailed
}
