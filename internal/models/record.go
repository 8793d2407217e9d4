// Package models provides the data structures shared across the application:
// records, the status enums, calendar dates, amounts and the store-boundary
// cell union.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table names used with the record store.
const (
	TablePayments = "payments"
	TableExpenses = "expenses"
	TableMasters  = "masters"
)

// PaymentRecord is one incoming payment as recorded by accounting.
type PaymentRecord struct {
	ID          string
	Subject     string
	ProjectName string
	Payee       string
	PayeeCode   string
	Amount      decimal.Decimal
	PaymentDate Date
	Status      Status
	CreatedAt   time.Time
}

// ExpenseRecord is one expected expense, either imported or generated from a
// master template.
type ExpenseRecord struct {
	ID          string
	ProjectName string
	Payee       string
	PayeeCode   string
	Amount      decimal.Decimal
	PaymentDate Date
	Status      Status
	SourceType  string
	MasterID    string
	CreatedAt   time.Time
}

// MasterRecord is a recurring-expense template from which period-specific
// expense records are generated.
type MasterRecord struct {
	ID             string
	ProjectName    string
	Payee          string
	PayeeCode      string
	Amount         decimal.Decimal
	PaymentType    PaymentType
	StartDate      Date
	EndDate        Date
	BroadcastDays  string
	BroadcastCount int
	Notes          string
}

// AdvanceStatus moves the payment's status forward. Backward transitions are
// ignored, preserving the forward-only invariant.
func (p *PaymentRecord) AdvanceStatus(next Status) bool {
	if !p.Status.CanAdvanceTo(next) {
		return false
	}
	p.Status = next
	return true
}

// AdvanceStatus moves the expense's status forward. Backward transitions are
// ignored.
func (e *ExpenseRecord) AdvanceStatus(next Status) bool {
	if !e.Status.CanAdvanceTo(next) {
		return false
	}
	e.Status = next
	return true
}

// Column layouts of the stored tables. Rows are positional, mirroring the
// sheet layout the CSV files were designed around.
const (
	PaymentColID = iota
	PaymentColSubject
	PaymentColProjectName
	PaymentColPayee
	PaymentColPayeeCode
	PaymentColAmount
	PaymentColPaymentDate
	PaymentColStatus
	PaymentColCreatedAt
	PaymentColCount
)

const (
	ExpenseColID = iota
	ExpenseColProjectName
	ExpenseColPayee
	ExpenseColPayeeCode
	ExpenseColAmount
	ExpenseColPaymentDate
	ExpenseColStatus
	ExpenseColSourceType
	ExpenseColMasterID
	ExpenseColCreatedAt
	ExpenseColCount
)

const (
	MasterColID = iota
	MasterColProjectName
	MasterColPayee
	MasterColPayeeCode
	MasterColAmount
	MasterColPaymentType
	MasterColStartDate
	MasterColEndDate
	MasterColBroadcastDays
	MasterColBroadcastCount
	MasterColNotes
	MasterColCount
)

func cellAmount(c CellValue) decimal.Decimal {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellText:
		d, err := decimal.NewFromString(c.Text)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func cellDate(c CellValue) Date {
	switch c.Kind {
	case CellDate:
		return c.Date
	case CellText:
		var d Date
		_ = d.UnmarshalText([]byte(c.Text))
		return d
	default:
		return EmptyDate()
	}
}

func cellTime(c CellValue) time.Time {
	d := cellDate(c)
	if d.IsEmpty() {
		return time.Time{}
	}
	return d.Time()
}

// ToRow converts the payment into its stored row form.
func (p PaymentRecord) ToRow() Row {
	return Row{
		TextCell(p.ID),
		TextCell(p.Subject),
		TextCell(p.ProjectName),
		TextCell(p.Payee),
		TextCell(p.PayeeCode),
		NumberCell(p.Amount),
		DateCell(p.PaymentDate),
		TextCell(string(p.Status)),
		CellFromTime(p.CreatedAt),
	}
}

// PaymentFromRow rebuilds a payment from its stored row form.
func PaymentFromRow(r Row) PaymentRecord {
	return PaymentRecord{
		ID:          r.Cell(PaymentColID).AsText(),
		Subject:     r.Cell(PaymentColSubject).AsText(),
		ProjectName: r.Cell(PaymentColProjectName).AsText(),
		Payee:       r.Cell(PaymentColPayee).AsText(),
		PayeeCode:   r.Cell(PaymentColPayeeCode).AsText(),
		Amount:      cellAmount(r.Cell(PaymentColAmount)),
		PaymentDate: cellDate(r.Cell(PaymentColPaymentDate)),
		Status:      ParseStatus(r.Cell(PaymentColStatus).AsText()),
		CreatedAt:   cellTime(r.Cell(PaymentColCreatedAt)),
	}
}

// ToRow converts the expense into its stored row form.
func (e ExpenseRecord) ToRow() Row {
	return Row{
		TextCell(e.ID),
		TextCell(e.ProjectName),
		TextCell(e.Payee),
		TextCell(e.PayeeCode),
		NumberCell(e.Amount),
		DateCell(e.PaymentDate),
		TextCell(string(e.Status)),
		TextCell(e.SourceType),
		TextCell(e.MasterID),
		CellFromTime(e.CreatedAt),
	}
}

// ExpenseFromRow rebuilds an expense from its stored row form.
func ExpenseFromRow(r Row) ExpenseRecord {
	return ExpenseRecord{
		ID:          r.Cell(ExpenseColID).AsText(),
		ProjectName: r.Cell(ExpenseColProjectName).AsText(),
		Payee:       r.Cell(ExpenseColPayee).AsText(),
		PayeeCode:   r.Cell(ExpenseColPayeeCode).AsText(),
		Amount:      cellAmount(r.Cell(ExpenseColAmount)),
		PaymentDate: cellDate(r.Cell(ExpenseColPaymentDate)),
		Status:      ParseStatus(r.Cell(ExpenseColStatus).AsText()),
		SourceType:  r.Cell(ExpenseColSourceType).AsText(),
		MasterID:    r.Cell(ExpenseColMasterID).AsText(),
		CreatedAt:   cellTime(r.Cell(ExpenseColCreatedAt)),
	}
}

// ToRow converts the master into its stored row form.
func (m MasterRecord) ToRow() Row {
	return Row{
		TextCell(m.ID),
		TextCell(m.ProjectName),
		TextCell(m.Payee),
		TextCell(m.PayeeCode),
		NumberCell(m.Amount),
		TextCell(string(m.PaymentType)),
		DateCell(m.StartDate),
		DateCell(m.EndDate),
		TextCell(m.BroadcastDays),
		NumberCell(decimal.NewFromInt(int64(m.BroadcastCount))),
		TextCell(m.Notes),
	}
}

// MasterFromRow rebuilds a master from its stored row form.
func MasterFromRow(r Row) MasterRecord {
	count := cellAmount(r.Cell(MasterColBroadcastCount))
	return MasterRecord{
		ID:             r.Cell(MasterColID).AsText(),
		ProjectName:    r.Cell(MasterColProjectName).AsText(),
		Payee:          r.Cell(MasterColPayee).AsText(),
		PayeeCode:      r.Cell(MasterColPayeeCode).AsText(),
		Amount:         cellAmount(r.Cell(MasterColAmount)),
		PaymentType:    ParsePaymentType(r.Cell(MasterColPaymentType).AsText()),
		StartDate:      cellDate(r.Cell(MasterColStartDate)),
		EndDate:        cellDate(r.Cell(MasterColEndDate)),
		BroadcastDays:  r.Cell(MasterColBroadcastDays).AsText(),
		BroadcastCount: int(count.IntPart()),
		Notes:          r.Cell(MasterColNotes).AsText(),
	}
}
