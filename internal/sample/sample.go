// Package sample provides canonical-header sample CSV bodies and a small
// demo dataset, used by the sample and seed commands and by manual testing.
package sample

import (
	"time"

	"github.com/shopspring/decimal"

	"rkaneko/payrecon/internal/csvutil"
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/store"
)

var sampleHeaders = map[models.ImportKind][]string{
	models.KindPayments: {"ID", "件名", "案件名", "支払い先", "支払い先コード", "金額", "支払日", "状態"},
	models.KindExpenses: {"ID", "案件名", "支払い先", "支払い先コード", "金額", "支払日", "状態"},
	models.KindMasters:  {"ID", "案件名", "支払い先", "支払い先コード", "金額", "種別", "開始日", "終了日", "放送曜日", "回数", "備考"},
}

var sampleRows = map[models.ImportKind][][]string{
	models.KindPayments: {
		{"PAY001", "広告放送料", "ラジオCM番組A", "株式会社サンプル", "COMP001", "50000", "2024-01-15", "未処理"},
		{"PAY002", "制作費", "ラジオCM番組B", "制作会社B", "COMP002", "120000", "2024-01-20", "未処理"},
	},
	models.KindExpenses: {
		{"EXP001", "ラジオCM番組A", "株式会社サンプル", "COMP001", "50000", "2024-01-15", "未処理"},
		{"EXP002", "ラジオCM番組B", "制作会社B", "COMP002", "120000", "2024-01-20", "未処理"},
	},
	models.KindMasters: {
		{"MAS001", "ラジオCM番組A", "株式会社サンプル", "COMP001", "50000", "月額固定", "2024-01-01", "2024-03-31", "月曜", "12", "3ヶ月契約"},
		{"MAS002", "ラジオCM番組B", "制作会社B", "COMP002", "120000", "月額固定", "2024-01-01", "2024-12-31", "金曜", "52", "年間契約"},
	},
}

// CSV returns a sample CSV body with canonical headers for the given kind.
func CSV(kind models.ImportKind) string {
	lines := []string{csvutil.SerializeRow(sampleHeaders[kind])}
	for _, row := range sampleRows[kind] {
		lines = append(lines, csvutil.SerializeRow(row))
	}
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

// Seed loads a small matching-ready demo dataset into the store, replacing
// existing contents.
func Seed(st store.Store) error {
	now := time.Now()
	payments := []models.PaymentRecord{
		{ID: "PAY001", Subject: "広告放送料", ProjectName: "ラジオCM番組A", Payee: "株式会社サンプル", PayeeCode: "COMP001",
			Amount: decimal.NewFromInt(50000), PaymentDate: models.NewDate(2024, 1, 15), Status: models.StatusUnprocessed, CreatedAt: now},
		{ID: "PAY002", Subject: "制作費", ProjectName: "ラジオCM番組B", Payee: "制作会社B", PayeeCode: "COMP002",
			Amount: decimal.NewFromInt(120000), PaymentDate: models.NewDate(2024, 1, 20), Status: models.StatusUnprocessed, CreatedAt: now},
		{ID: "PAY003", Subject: "スタジオ使用料", ProjectName: "音楽番組収録", Payee: "サウンドスタジオ", PayeeCode: "SS001",
			Amount: decimal.NewFromInt(45000), PaymentDate: models.NewDate(2024, 1, 25), Status: models.StatusUnprocessed, CreatedAt: now},
	}
	expenses := []models.ExpenseRecord{
		{ID: "EXP001", ProjectName: "ラジオCM番組A", Payee: "株式会社サンプル", PayeeCode: "COMP001",
			Amount: decimal.NewFromInt(50000), PaymentDate: models.NewDate(2024, 1, 15), Status: models.StatusUnprocessed, SourceType: "seed", CreatedAt: now},
		{ID: "EXP002", ProjectName: "ラジオCM番組B", Payee: "制作会社B", PayeeCode: "COMP002",
			Amount: decimal.NewFromInt(120000), PaymentDate: models.NewDate(2024, 1, 20), Status: models.StatusUnprocessed, SourceType: "seed", CreatedAt: now},
		{ID: "EXP003", ProjectName: "音楽番組収録", Payee: "サウンドスタジオ", PayeeCode: "SS001",
			Amount: decimal.NewFromInt(45000), PaymentDate: models.NewDate(2024, 1, 25), Status: models.StatusUnprocessed, SourceType: "seed", CreatedAt: now},
	}
	masters := []models.MasterRecord{
		{ID: "MAS001", ProjectName: "ラジオCM番組A", Payee: "株式会社サンプル", PayeeCode: "COMP001",
			Amount: decimal.NewFromInt(50000), PaymentType: models.PaymentTypeMonthly,
			StartDate: models.NewDate(2024, 1, 1), EndDate: models.NewDate(2024, 3, 31), BroadcastDays: "月曜", BroadcastCount: 12, Notes: "3ヶ月契約"},
	}

	paymentRows := make([]models.Row, len(payments))
	for i, p := range payments {
		paymentRows[i] = p.ToRow()
	}
	expenseRows := make([]models.Row, len(expenses))
	for i, e := range expenses {
		expenseRows[i] = e.ToRow()
	}
	masterRows := make([]models.Row, len(masters))
	for i, m := range masters {
		masterRows[i] = m.ToRow()
	}

	if err := st.SetTable(models.TablePayments, paymentRows); err != nil {
		return err
	}
	if err := st.SetTable(models.TableExpenses, expenseRows); err != nil {
		return err
	}
	return st.SetTable(models.TableMasters, masterRows)
}
