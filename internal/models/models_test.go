package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	assert.Equal(t, "2024-03-05", d.String())
	assert.Equal(t, "2024-03", d.YearMonth())
	assert.False(t, d.IsEmpty())

	empty := EmptyDate()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.String())
	assert.Equal(t, "", empty.YearMonth())

	assert.True(t, NewDate(2024, 1, 1).Before(d))
	assert.True(t, d.After(NewDate(2024, 1, 1)))
	assert.False(t, empty.Before(d))
	assert.False(t, d.Before(empty))
}

func TestDateTextRoundTrip(t *testing.T) {
	d := NewDate(2024, time.January, 15)
	text, err := d.MarshalText()
	assert.NoError(t, err)

	var back Date
	assert.NoError(t, back.UnmarshalText(text))
	assert.True(t, d.Equal(back))

	var bad Date
	assert.NoError(t, bad.UnmarshalText([]byte("not a date")))
	assert.True(t, bad.IsEmpty())
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"unprocessed to matched", StatusUnprocessed, StatusMatched, true},
		{"unprocessed to processing", StatusUnprocessed, StatusProcessing, true},
		{"matched to done", StatusMatched, StatusDone, true},
		{"matched to unprocessed", StatusMatched, StatusUnprocessed, false},
		{"same status", StatusMatched, StatusMatched, false},
		{"unknown source", Status("謎"), StatusMatched, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanAdvanceTo(tc.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusMatched, ParseStatus("照合済"))
	assert.Equal(t, StatusUnprocessed, ParseStatus(""))
	assert.Equal(t, StatusUnprocessed, ParseStatus("garbage"))
}

func TestParsePaymentType(t *testing.T) {
	assert.Equal(t, PaymentTypeCountBased, ParsePaymentType("回数ベース"))
	assert.Equal(t, PaymentTypeMonthly, ParsePaymentType(""))
	assert.Equal(t, PaymentTypeMonthly, ParsePaymentType("?"))
}

func TestAdvanceStatusForwardOnly(t *testing.T) {
	p := PaymentRecord{Status: StatusUnprocessed}
	assert.True(t, p.AdvanceStatus(StatusMatched))
	assert.Equal(t, StatusMatched, p.Status)

	// Backward move ignored.
	assert.False(t, p.AdvanceStatus(StatusUnprocessed))
	assert.Equal(t, StatusMatched, p.Status)
}

func TestAmountsEqual(t *testing.T) {
	a := decimal.RequireFromString("49999.999")
	b := decimal.RequireFromString("50000.0")
	assert.True(t, AmountsEqual(a, b))

	c := decimal.RequireFromString("49990")
	assert.False(t, AmountsEqual(c, b))

	// Exactly at the tolerance boundary is not equal.
	d := decimal.RequireFromString("50000.01")
	assert.False(t, AmountsEqual(d, b))
}

func TestPaymentRowRoundTrip(t *testing.T) {
	p := PaymentRecord{
		ID:          "PAY001",
		Subject:     "広告放送料",
		ProjectName: "ラジオCM番組A",
		Payee:       "株式会社サンプル",
		PayeeCode:   "COMP001",
		Amount:      decimal.RequireFromString("50000"),
		PaymentDate: NewDate(2024, 1, 15),
		Status:      StatusUnprocessed,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	back := PaymentFromRow(p.ToRow())
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.Subject, back.Subject)
	assert.Equal(t, p.PayeeCode, back.PayeeCode)
	assert.True(t, p.Amount.Equal(back.Amount))
	assert.True(t, p.PaymentDate.Equal(back.PaymentDate))
	assert.Equal(t, p.Status, back.Status)
}

func TestExpenseRowRoundTrip(t *testing.T) {
	e := ExpenseRecord{
		ID:          "EXP001",
		ProjectName: "番組A",
		Payee:       "局A",
		PayeeCode:   "C001",
		Amount:      decimal.RequireFromString("1234.5"),
		PaymentDate: NewDate(2024, 2, 29),
		Status:      StatusMatched,
		SourceType:  "master",
		MasterID:    "MAS001",
	}

	back := ExpenseFromRow(e.ToRow())
	assert.Equal(t, e.MasterID, back.MasterID)
	assert.Equal(t, e.SourceType, back.SourceType)
	assert.True(t, e.Amount.Equal(back.Amount))
	assert.Equal(t, "2024-02", back.PaymentDate.YearMonth())
}

func TestMasterRowRoundTrip(t *testing.T) {
	m := MasterRecord{
		ID:             "MAS001",
		ProjectName:    "番組A",
		Payee:          "局A",
		PayeeCode:      "C001",
		Amount:         decimal.RequireFromString("80000"),
		PaymentType:    PaymentTypeCountBased,
		StartDate:      NewDate(2024, 1, 1),
		EndDate:        NewDate(2024, 6, 30),
		BroadcastDays:  "火水木",
		BroadcastCount: 20,
		Notes:          "5ヶ月契約",
	}

	back := MasterFromRow(m.ToRow())
	assert.Equal(t, m.PaymentType, back.PaymentType)
	assert.Equal(t, m.BroadcastCount, back.BroadcastCount)
	assert.Equal(t, m.BroadcastDays, back.BroadcastDays)
	assert.True(t, m.StartDate.Equal(back.StartDate))
}

func TestRowCellOutOfRange(t *testing.T) {
	r := Row{TextCell("a")}
	assert.True(t, r.Cell(5).IsEmpty())
	assert.True(t, r.Cell(-1).IsEmpty())
	assert.Equal(t, "a", r.Cell(0).AsText())
}
