// Package invoiceextract は、アップロードされた請求書PDFから抽出した
// 生テキストに対する正規表現ベースのベストエフォート抽出。
// 文法のパースではないので、マッチしない入力は単に「見つからない」になる。
package invoiceextract

import (
	"regexp"
	"strings"
)

var (
	// "Billed to" の後に続く請求書番号と日付（DD/MM/YYYY）の組
	billRe = regexp.MustCompile(
		`Billed to\s*([A-Z0-9]+(?:\s*-\s*[A-Z0-9]+)?/\d+\s*-\s*\d+/\d+)\s+(\d{2}/\d{2}/\d{4})`)

	// "Item/Description ... S.No." の後に続くシリアル番号。
	// "BASE - 001&002" のような複合表記も1トークンとして拾う。
	serialRe = regexp.MustCompile(
		`(?i)Item/Description[\s\S]*?S\.?\s*No\.?\s*([A-Z0-9\-]+(?:\s+-\s+[0-9]+(?:&[0-9]+)*)?)`)
)

type Bill struct {
	BillNumber string
	Date       string
}

// ExtractBillはテキストから請求書番号と日付を拾う。
func ExtractBill(text string) (Bill, bool) {
	m := billRe.FindStringSubmatch(text)
	if m == nil {
		return Bill{}, false
	}
	return Bill{
		BillNumber: strings.TrimSpace(m[1]),
		Date:       strings.TrimSpace(m[2]),
	}, true
}

// ExtractSerialsはシリアル番号をすべて拾う。
// "&" を含むエントリは共通の前置部を使って複数件に展開する：
// "CELL-100 - 001&002" → "CELL-100 - 001", "CELL-100 - 002"
func ExtractSerials(text string) []string {
	matches := serialRe.FindAllStringSubmatch(text, -1)

	serials := make([]string, 0, len(matches))
	for _, m := range matches {
		raw := strings.TrimSpace(m[1])
		if !strings.Contains(raw, "&") {
			serials = append(serials, raw)
			continue
		}

		base, numbers, ok := strings.Cut(raw, " - ")
		if !ok {
			// 展開できない形はそのまま残す
			serials = append(serials, raw)
			continue
		}

		base = strings.TrimSpace(base)
		for _, num := range strings.Split(numbers, "&") {
			serials = append(serials, base+" - "+strings.TrimSpace(num))
		}
	}
	return serials
}
