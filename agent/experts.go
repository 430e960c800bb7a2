package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user holds Indian equities and compares them to a benchmark index. Ask the Analyst
			first to know what the portfolio holds and how it performs, then the Trader for news
			and market context. Answer in markdown, quote figures as the Analyst gives them.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search, for news and market context.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader of the Indian stock market, aware of the latest news
		about listed companies, sectors and indices. Ask the Trader whenever you need recent or
		grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in trading on the NSE and BSE. You search and find about anything related to
			listed companies, sectors, indices and macro events. You leverage Google Search to ground your
			assertions, and you relate recent news to the question asked.
			`),
		},
	}
}

// Tools gives the analyst read access to the user's portfolio. Each function
// returns a markdown report.
type Tools struct {
	Holdings  func(ctx context.Context) (string, error)
	Valuation func(ctx context.Context, timeframe string) (string, error)
}

// Functions returns the tools as model functions.
func (t *Tools) Functions() []Function {
	holdings := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_holdings",
			Description: "Returns the list of holdings: symbol, name, quantity, buy price and buy date.",
			Response:    &genai.Schema{Type: genai.TypeString, Description: "markdown table of holdings"},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			md, err := t.Holdings(ctx)
			if err != nil {
				return errorResponse(id, "get_holdings", err)
			}
			return outputResponse(id, "get_holdings", md)
		},
	}
	valuation := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "get_valuation",
			Description: `Values the portfolio over a timeframe and compares it to the benchmark:
			totals, profit and loss, day change, daily series and top movers.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"timeframe": {
						Type:        genai.TypeString,
						Description: "The timeframe to look at.",
						Enum:        []string{"5D", "1M", "6M", "1Y", "3Y"},
					},
				},
				Required: []string{"timeframe"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "markdown valuation report"},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			timeframe, ok := args["timeframe"].(string)
			if !ok {
				return errorResponse(id, "get_valuation", fmt.Errorf("invalid timeframe type got %T, expected string", args["timeframe"]))
			}
			md, err := t.Valuation(ctx, strings.TrimSpace(timeframe))
			if err != nil {
				return errorResponse(id, "get_valuation", err)
			}
			return outputResponse(id, "get_valuation", md)
		},
	}
	return []Function{holdings, valuation}
}

// NewAnalyst returns the expert in charge of the user's portfolio figures.
func NewAnalyst(model string, tools *Tools) *Expert {
	lib := tools.Functions()
	return &Expert{
		Name: "Analyst",
		Description: `This is the portfolio Analyst. The Analyst reads the user's holdings and values
		them against the benchmark over any timeframe.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are a portfolio analyst in charge of the user's holdings.
			Use the Tools to get the holdings and their valuation over a timeframe, and answer with
			precise figures. Pardon the approximative language of the other experts and figure out
			what they meant.
			`),
		},
		Library: NewLibrary(lib),
	}
}
