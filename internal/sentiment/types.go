package sentiment

// Well-known sentiment labels produced by the reference service. Other labels
// are passed through untouched.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Result is one classified sentence.
type Result struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
}

// PredictRequest mirrors the body of POST /predict.
type PredictRequest struct {
	Conversation []string `json:"conversation"`
}

// PredictResponse mirrors a successful /predict payload.
type PredictResponse struct {
	Results []Result `json:"results"`
}
