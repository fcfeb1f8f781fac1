package invoiceextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBill(t *testing.T) {
	text := `TAX INVOICE
Billed to EC - GJ/24 - 25/1042 15/03/2025
GSTIN: 24AAACE1234F1Z5`

	bill, ok := ExtractBill(text)
	require.True(t, ok)
	assert.Equal(t, "EC - GJ/24 - 25/1042", bill.BillNumber)
	assert.Equal(t, "15/03/2025", bill.Date)
}

func TestExtractBill_SimpleNumber(t *testing.T) {
	bill, ok := ExtractBill("Billed to EC/24 - 25/77 01/04/2024 some trailing text")
	require.True(t, ok)
	assert.Equal(t, "EC/24 - 25/77", bill.BillNumber)
	assert.Equal(t, "01/04/2024", bill.Date)
}

func TestExtractBill_NotFound(t *testing.T) {
	_, ok := ExtractBill("completely unrelated text")
	assert.False(t, ok)

	//日付が欠けていたら不成立
	_, ok = ExtractBill("Billed to EC/24 - 25/77 no date here")
	assert.False(t, ok)
}

func TestExtractSerials_Single(t *testing.T) {
	text := `Item/Description Qty Rate
Tubular Battery 150Ah 1 9500
S.No. TB-150-0042`

	serials := ExtractSerials(text)
	assert.Equal(t, []string{"TB-150-0042"}, serials)
}

func TestExtractSerials_AmpersandExpansion(t *testing.T) {
	text := `Item/Description Qty Rate
Cell Pack 2 4200
S.No. CELL-100 - 001&002`

	serials := ExtractSerials(text)
	assert.Equal(t, []string{"CELL-100 - 001", "CELL-100 - 002"}, serials)
}

func TestExtractSerials_CaseInsensitiveHeader(t *testing.T) {
	text := `ITEM/DESCRIPTION
Battery
s no. BT-77`

	serials := ExtractSerials(text)
	assert.Equal(t, []string{"BT-77"}, serials)
}

func TestExtractSerials_None(t *testing.T) {
	assert.Empty(t, ExtractSerials("no serial table in this invoice"))
}
