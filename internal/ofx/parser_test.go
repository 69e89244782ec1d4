package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>DIRECTDEP
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024013101
<NAME>ACME PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 4,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(nil)
			transactions, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser(nil)
	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	tx1 := transactions[0]
	assert.Equal(t, model.TypeExpense, tx1.Type)
	assert.True(t, tx1.Amount.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, "STARBUCKS STORE #1234", tx1.Note)
	assert.Equal(t, model.CategoryOther, tx1.Category.ID)
	assert.Empty(t, tx1.ID)
	assert.Equal(t, 2024, tx1.Date.Year())
	assert.Equal(t, time.January, tx1.Date.Month())
	assert.Equal(t, 15, tx1.Date.Day())

	tx2 := transactions[1]
	assert.Equal(t, "Whole Foods Market", tx2.Note)
	assert.True(t, tx2.Amount.Equal(decimal.NewFromInt(125)))

	salary := transactions[2]
	assert.Equal(t, model.TypeIncome, salary.Type)
	assert.Equal(t, model.CategorySalary, salary.Category.ID)
	assert.Equal(t, "Salário", salary.Category.Name)
	assert.True(t, salary.Amount.Equal(decimal.NewFromInt(2500)))

	check := transactions[3]
	assert.Equal(t, "CHECK #1234", check.Note)
	assert.True(t, check.Amount.Equal(decimal.NewFromInt(500)))
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser(nil)
	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", transactions[0].Note)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("45.99")))
	assert.Equal(t, "NETFLIX.COM", transactions[1].Note)
	assert.Equal(t, model.TypeExpense, transactions[1].Type)
}

func TestParseUsesCustomCategoryNames(t *testing.T) {
	cats := model.DefaultCategories()
	for i := range cats {
		if cats[i].ID == model.CategorySalary {
			cats[i].Name = "Payroll"
		}
	}

	transactions, err := NewParser(cats).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, "Payroll", transactions[2].Category.Name)
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		trnType string
		typ     model.TransactionType
		want    string
	}{
		{"INT", model.TypeIncome, model.CategoryInvestment},
		{"DIV", model.TypeIncome, model.CategoryInvestment},
		{"DIRECTDEP", model.TypeIncome, model.CategorySalary},
		{"DIRECTDEP", model.TypeExpense, model.CategoryOther},
		{"FEE", model.TypeExpense, model.CategoryBills},
		{"SRVCHG", model.TypeExpense, model.CategoryBills},
		{"POS", model.TypeExpense, model.CategoryShopping},
		{"DEBIT", model.TypeExpense, model.CategoryOther},
		{"DIV", model.TypeExpense, model.CategoryOther},
		{"FEE", model.TypeIncome, model.CategoryOther},
		{"POS", model.TypeIncome, model.CategoryOther},
	}
	offered := func(typ model.TransactionType, id string) bool {
		_, ok := model.FindCategory(model.CategoriesFor(model.DefaultCategories(), typ), id)
		return ok
	}
	for _, tt := range tests {
		t.Run(tt.trnType+"_"+string(tt.typ), func(t *testing.T) {
			got := categoryFor(tt.trnType, tt.typ)
			assert.Equal(t, tt.want, got)
			assert.True(t, offered(tt.typ, got), "%s is not offered for %s", got, tt.typ)
		})
	}
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser(nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    "POS PURCHASE STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    "DEBIT CARD PURCHASE WHOLE FOODS",
			expected: "WHOLE FOODS",
		},
		{
			name:     "keep clean name",
			input:    "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			input:    "  AMAZON.COM  ",
			expected: "AMAZON.COM",
		},
		{
			name:     "strip leading date",
			input:    "01/15 CORNER BAKERY",
			expected: "CORNER BAKERY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.input),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestParsedTransactionsDeduplicate(t *testing.T) {
	parser := NewParser(nil)
	first, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	second, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Fingerprint(), second[i].Fingerprint())
	}
	assert.NotEqual(t, first[0].Fingerprint(), first[1].Fingerprint())
}

func TestParseFileHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil).ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}
