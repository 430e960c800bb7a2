package cmd

import (
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the pft command line.
func Completion() *complete.Command {
	timeframes := make(predict.Set, 0, len(tracker.Lookbacks))
	for _, l := range tracker.Lookbacks {
		timeframes = append(timeframes, l.String())
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"add": {Flags: map[string]complete.Predictor{
				"s": predict.Something,
				"n": predict.Something,
				"q": predict.Something,
				"p": predict.Something,
				"d": predict.Set{"0d", "-1d", "-1w", "-1m"},
			}},
			"clear":    {},
			"holdings": {},
			"value": {Flags: map[string]complete.Predictor{
				"t":    timeframes,
				"b":    predict.Set{"^NSEI", "^BSESN", "^NSEBANK"},
				"json": predict.Nothing,
			}},
			"quote":   {Args: predict.Something},
			"symbols": {Args: predict.Something},
			"assist":  {Args: predict.Something},
			"topic":   {Args: predict.Set(append(topics, docs.All))},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
	}
}
