package headermap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical field names. These are the Japanese header labels of the sample
// CSV files; incoming files may use any synonym below and still map.
const (
	FieldID             = "ID"
	FieldSubject        = "件名"
	FieldProjectName    = "案件名"
	FieldPayee          = "支払い先"
	FieldPayeeCode      = "支払い先コード"
	FieldAmount         = "金額"
	FieldPaymentDate    = "支払日"
	FieldStatus         = "状態"
	FieldPaymentType    = "種別"
	FieldStartDate      = "開始日"
	FieldEndDate        = "終了日"
	FieldBroadcastDays  = "放送曜日"
	FieldBroadcastCount = "回数"
	FieldNotes          = "備考"
)

// defaultSynonyms are exact-match alternatives per canonical field, tried
// before any fuzzy stage. Static configuration, not logic: extending a list
// never touches the mapping algorithm.
var defaultSynonyms = map[string][]string{
	FieldID:             {"ID", "id", "Id", "番号", "No", "NO"},
	FieldSubject:        {"件名", "題名", "subject", "Subject", "title", "Title"},
	FieldProjectName:    {"案件名", "プロジェクト名", "番組名", "project", "Project", "project name", "Project Name"},
	FieldPayee:          {"支払い先", "支払先", "支払先名", "会社名", "vendor", "Vendor", "company", "Company", "payee", "Payee"},
	FieldPayeeCode:      {"支払い先コード", "支払先コード", "取引先コード", "code", "Code", "vendor code", "Vendor Code"},
	FieldAmount:         {"金額", "料金", "価格", "費用", "amount", "Amount", "price", "Price", "cost", "Cost"},
	FieldPaymentDate:    {"支払日", "支払い日", "支払予定日", "date", "Date", "payment date", "Payment Date"},
	FieldStatus:         {"状態", "ステータス", "status", "Status", "state", "State"},
	FieldPaymentType:    {"種別", "タイプ", "type", "Type", "category", "Category"},
	FieldStartDate:      {"開始日", "開始", "start", "Start", "start date", "Start Date"},
	FieldEndDate:        {"終了日", "終了", "end", "End", "end date", "End Date"},
	FieldBroadcastDays:  {"放送曜日", "曜日", "放送日", "day", "Day", "days", "Days"},
	FieldBroadcastCount: {"回数", "放送回数", "count", "Count"},
	FieldNotes:          {"備考", "メモ", "注記", "note", "Note", "notes", "Notes", "memo", "Memo", "comment", "Comment"},
}

// defaultKeywords are the loosely related fallback terms per canonical field,
// consulted only when the exact and substring stages found nothing.
var defaultKeywords = map[string][]string{
	FieldProjectName:    {"案件", "project", "プロジェクト", "番組"},
	FieldPayee:          {"支払先", "支払", "vendor", "company", "会社", "先"},
	FieldPayeeCode:      {"コード", "code", "id"},
	FieldAmount:         {"金額", "料金", "amount", "price", "価格", "料", "円", "費"},
	FieldPaymentType:    {"種別", "type", "category", "カテゴリ"},
	FieldPaymentDate:    {"支払", "日付", "date"},
	FieldStartDate:      {"開始", "start", "開始日付"},
	FieldEndDate:        {"終了", "end", "終了日付"},
	FieldBroadcastDays:  {"曜日", "day", "放送日"},
	FieldBroadcastCount: {"回数", "count", "回"},
	FieldNotes:          {"備考", "note", "memo", "メモ", "comment"},
}

// synonymFile is the optional on-disk override format: per-field synonym and
// keyword lists that extend the built-in tables.
type synonymFile struct {
	Synonyms map[string][]string `yaml:"synonyms"`
	Keywords map[string][]string `yaml:"keywords"`
}

// LoadSynonymFile reads extra synonyms/keywords from a YAML file and merges
// them over the built-in tables. A missing file is not an error; the built-in
// tables simply apply unchanged.
func LoadSynonymFile(path string) (map[string][]string, map[string][]string, error) {
	synonyms := cloneTable(defaultSynonyms)
	keywords := cloneTable(defaultKeywords)

	if path == "" {
		return synonyms, keywords, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Synonym file not found: %s", path)
			return synonyms, keywords, nil
		}
		return nil, nil, fmt.Errorf("error reading synonym file: %w", err)
	}

	var file synonymFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("error parsing synonym file: %w", err)
	}

	for field, extra := range file.Synonyms {
		synonyms[field] = append(synonyms[field], extra...)
	}
	for field, extra := range file.Keywords {
		keywords[field] = append(keywords[field], extra...)
	}

	log.Debugf("Loaded synonym overrides from %s", path)
	return synonyms, keywords, nil
}

func cloneTable(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}
