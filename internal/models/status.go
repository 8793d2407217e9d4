package models

// Status is the processing state of a payment or expense record. Values are
// the literal Japanese labels used in the CSV files and the store; transitions
// only ever move forward through the enum, never backward.
type Status string

const (
	StatusUnprocessed Status = "未処理"
	StatusProcessing  Status = "処理中"
	StatusMatched     Status = "照合済"
	StatusDone        Status = "完了"
)

// statusRank orders the enum for forward-only transition checks.
var statusRank = map[Status]int{
	StatusUnprocessed: 0,
	StatusProcessing:  1,
	StatusMatched:     2,
	StatusDone:        3,
}

// IsValid reports whether s is one of the known status labels.
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next is a forward transition.
// Unknown labels never advance.
func (s Status) CanAdvanceTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// ParseStatus maps raw text onto the enum, defaulting to 未処理 for empty or
// unrecognized input.
func ParseStatus(raw string) Status {
	s := Status(raw)
	if s.IsValid() {
		return s
	}
	return StatusUnprocessed
}

// PaymentType describes how a master record generates expenses.
type PaymentType string

const (
	PaymentTypeMonthly    PaymentType = "月額固定"
	PaymentTypeCountBased PaymentType = "回数ベース"
	PaymentTypeOneTime    PaymentType = "一回限り"
)

// IsValid reports whether p is one of the known payment types.
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeMonthly, PaymentTypeCountBased, PaymentTypeOneTime:
		return true
	}
	return false
}

// ParsePaymentType maps raw text onto the enum, defaulting to 月額固定.
func ParsePaymentType(raw string) PaymentType {
	p := PaymentType(raw)
	if p.IsValid() {
		return p
	}
	return PaymentTypeMonthly
}
