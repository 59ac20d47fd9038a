package email

const (
	subjectQuoteReceivedFmt     = "[%s] 새 견적 문의가 접수되었습니다"
	subjectQuoteConfirmationFmt = "견적 문의 접수 완료 (%s)"
)
