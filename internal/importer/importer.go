// Package importer drives the CSV ingestion pipeline: tokenize, map headers,
// normalize values, validate per row and write the surviving records to the
// store. Row-level problems never abort an import; only structural problems
// (empty input, unmappable required headers) do, and those abort before the
// store is touched.
package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rkaneko/payrecon/internal/csvutil"
	"rkaneko/payrecon/internal/headermap"
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/normalize"
	"rkaneko/payrecon/internal/reconerror"
	"rkaneko/payrecon/internal/store"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// maxErrorDetails caps how many row errors are surfaced in a report; the
// remainder is kept as a count.
const maxErrorDetails = 10

// Options controls a single import call.
type Options struct {
	// ClearExisting replaces the target table instead of appending. The
	// clear happens only after the file has parsed and validated, so a
	// malformed file never destroys existing data.
	ClearExisting bool
}

// Report is the outcome of one import call.
type Report struct {
	Success       bool     `json:"success"`
	Kind          string   `json:"kind"`
	ImportedCount int      `json:"importedCount"`
	ErrorCount    int      `json:"errorCount"`
	ErrorDetails  []string `json:"errorDetails,omitempty"`
	Message       string   `json:"message"`
}

// Importer imports CSV bodies into the record store.
type Importer struct {
	store  store.Store
	mapper *headermap.Mapper
	now    func() time.Time
}

// New builds an Importer with the built-in header synonym tables.
func New(st store.Store) *Importer {
	return NewWithMapper(st, headermap.NewMapper())
}

// NewWithMapper builds an Importer with a custom header mapper, typically one
// carrying synonym overrides loaded from YAML.
func NewWithMapper(st store.Store, mapper *headermap.Mapper) *Importer {
	return &Importer{store: st, mapper: mapper, now: time.Now}
}

// ImportCSV imports one CSV body into the table for kind. The returned error
// is non-nil only for structural failures (empty input, incomplete header
// mapping, store failure); in those cases the report carries the same
// diagnosis with Success=false.
func (imp *Importer) ImportCSV(rawText string, kind models.ImportKind, opts Options) (Report, error) {
	report := Report{Kind: string(kind)}

	lines := csvutil.SplitLines(csvutil.StripBOM(rawText))
	if !hasContent(lines) {
		err := &reconerror.EmptyInputError{Kind: string(kind)}
		report.Message = err.Error()
		return report, err
	}

	headers := csvutil.ParseLine(lines[0])
	mapping := imp.mapper.MapHeaders(headers, headermap.CanonicalFields(kind))

	if missing := missingRequired(mapping, kind); len(missing) > 0 {
		err := &reconerror.HeaderMappingError{Kind: string(kind), Missing: missing, Headers: headers}
		report.Message = err.Error()
		return report, err
	}

	var rows []models.Row
	var rowErrors []*reconerror.RowError
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := csvutil.ParseLine(line)
		row, rowErr := imp.buildRecord(kind, mapping, fields, i+1)
		if rowErr != nil {
			rowErrors = append(rowErrors, rowErr)
			log.WithFields(logrus.Fields{"line": rowErr.Line, "reason": rowErr.Reason}).
				Warn("Skipping invalid row")
			continue
		}
		rows = append(rows, row)
	}

	if opts.ClearExisting {
		if err := imp.store.ClearTable(kind.Table()); err != nil {
			report.Message = err.Error()
			return report, err
		}
	}
	if err := imp.store.AppendRows(kind.Table(), rows); err != nil {
		report.Message = err.Error()
		return report, err
	}

	report.Success = true
	report.ImportedCount = len(rows)
	report.ErrorCount = len(rowErrors)
	report.ErrorDetails = formatRowErrors(rowErrors)
	report.Message = fmt.Sprintf("imported %d %s rows (%d skipped)",
		len(rows), kind, len(rowErrors))
	log.WithFields(logrus.Fields{
		"kind":     kind,
		"imported": len(rows),
		"skipped":  len(rowErrors),
	}).Info("Import completed")
	return report, nil
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

func missingRequired(mapping headermap.Mapping, kind models.ImportKind) []string {
	var missing []string
	for _, field := range headermap.RequiredFields(kind) {
		if !mapping.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func formatRowErrors(errs []*reconerror.RowError) []string {
	if len(errs) == 0 {
		return nil
	}
	n := len(errs)
	if n > maxErrorDetails {
		n = maxErrorDetails
	}
	details := make([]string, 0, n+1)
	for _, e := range errs[:n] {
		details = append(details, e.Error())
	}
	if rest := len(errs) - n; rest > 0 {
		details = append(details, fmt.Sprintf("... and %d more rows", rest))
	}
	return details
}

// buildRecord turns a parsed field list into a stored row. The returned
// RowError carries the 1-based file line number.
func (imp *Importer) buildRecord(kind models.ImportKind, mapping headermap.Mapping, fields []string, line int) (models.Row, *reconerror.RowError) {
	get := func(field string) string {
		col := mapping.Column(field)
		if col < 0 || col >= len(fields) {
			return ""
		}
		return normalize.CleanString(fields[col])
	}

	projectName := get(headermap.FieldProjectName)
	payee := get(headermap.FieldPayee)
	rawAmount := get(headermap.FieldAmount)

	if projectName == "" {
		return nil, rowError(line, "project name is required", fields)
	}
	if payee == "" {
		return nil, rowError(line, "payee is required", fields)
	}
	if rawAmount == "" {
		return nil, rowError(line, "amount is required", fields)
	}
	amount := normalize.CleanAmount(rawAmount)
	// Zero is ambiguous between "explicitly zero" and "unparsable"; surface
	// the raw value when the input held no zero digit at all.
	if amount.IsZero() && !strings.Contains(rawAmount, "0") {
		log.WithFields(logrus.Fields{"line": line, "raw": rawAmount}).
			Warn("Amount did not parse, stored as zero")
	}
	if amount.IsNegative() {
		return nil, rowError(line, fmt.Sprintf("amount %q is negative", rawAmount), fields)
	}

	id := get(headermap.FieldID)
	if id == "" {
		id = imp.store.GenerateID()
	}

	switch kind {
	case models.KindPayments, models.KindExpenses:
		paymentDate := normalize.NormalizeDate(get(headermap.FieldPaymentDate))
		if paymentDate.IsEmpty() {
			return nil, rowError(line, fmt.Sprintf("payment date %q did not parse", get(headermap.FieldPaymentDate)), fields)
		}
		status := models.ParseStatus(get(headermap.FieldStatus))
		if kind == models.KindPayments {
			return models.PaymentRecord{
				ID:          id,
				Subject:     get(headermap.FieldSubject),
				ProjectName: projectName,
				Payee:       payee,
				PayeeCode:   get(headermap.FieldPayeeCode),
				Amount:      amount,
				PaymentDate: paymentDate,
				Status:      status,
				CreatedAt:   imp.now(),
			}.ToRow(), nil
		}
		return models.ExpenseRecord{
			ID:          id,
			ProjectName: projectName,
			Payee:       payee,
			PayeeCode:   get(headermap.FieldPayeeCode),
			Amount:      amount,
			PaymentDate: paymentDate,
			Status:      status,
			SourceType:  "import",
			CreatedAt:   imp.now(),
		}.ToRow(), nil

	case models.KindMasters:
		count := normalize.CleanAmount(get(headermap.FieldBroadcastCount))
		return models.MasterRecord{
			ID:             id,
			ProjectName:    projectName,
			Payee:          payee,
			PayeeCode:      get(headermap.FieldPayeeCode),
			Amount:         amount,
			PaymentType:    models.ParsePaymentType(get(headermap.FieldPaymentType)),
			StartDate:      normalize.NormalizeDate(get(headermap.FieldStartDate)),
			EndDate:        normalize.NormalizeDate(get(headermap.FieldEndDate)),
			BroadcastDays:  get(headermap.FieldBroadcastDays),
			BroadcastCount: int(count.IntPart()),
			Notes:          get(headermap.FieldNotes),
		}.ToRow(), nil
	}

	return nil, rowError(line, fmt.Sprintf("unknown import kind %q", kind), fields)
}

func rowError(line int, reason string, fields []string) *reconerror.RowError {
	return &reconerror.RowError{Line: line, Reason: reason, Raw: strings.Join(fields, ",")}
}
