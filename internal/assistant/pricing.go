package assistant

import "github.com/shopspring/decimal"

// FallbackModel prices models missing from the table.
const FallbackModel = "gpt-3.5-turbo"

type price struct {
	prompt     decimal.Decimal
	completion decimal.Decimal
}

func usd(prompt, completion string) price {
	return price{prompt: decimal.RequireFromString(prompt), completion: decimal.RequireFromString(completion)}
}

// USD per token.
var prices = map[string]price{
	"gpt-3.5-turbo":       usd("0.000001", "0.000002"),
	"gpt-3.5-turbo-16k":   usd("0.000003", "0.000004"),
	"gpt-4":               usd("0.00003", "0.00006"),
	"gpt-4-turbo":         usd("0.00001", "0.00003"),
	"gpt-4-turbo-preview": usd("0.00001", "0.00003"),
	"gemini-2.0-flash":    usd("0.0000001", "0.0000004"),
	"gemini-2.5-flash":    usd("0.0000003", "0.0000025"),
	"gemini-2.5-pro":      usd("0.00000125", "0.00001"),
}

// EstimateCost prices a call in USD.
func EstimateCost(model string, promptTokens, completionTokens int) decimal.Decimal {
	p, ok := prices[model]
	if !ok {
		p = prices[FallbackModel]
	}
	return p.prompt.Mul(decimal.NewFromInt(int64(promptTokens))).
		Add(p.completion.Mul(decimal.NewFromInt(int64(completionTokens))))
}
