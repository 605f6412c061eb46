package backend

// Tweet is one text submitted for analysis
type Tweet struct {
	Text string `json:"text"`
}

// TweetBatch is the request body shared by /analyze, /vader-dashboard,
// /download and /download-chart
type TweetBatch struct {
	Tweets []Tweet `json:"tweets"`
}

// NewBatch wraps texts in a request body
func NewBatch(texts []string) *TweetBatch {
	batch := &TweetBatch{Tweets: make([]Tweet, 0, len(texts))}
	for _, text := range texts {
		batch.Tweets = append(batch.Tweets, Tweet{Text: text})
	}
	return batch
}

// HealthStatus is the /health payload
type HealthStatus struct {
	Status           string `json:"status"`
	HybridReady      *bool  `json:"hybrid_ready,omitempty"`
	ArtifactsPath    string `json:"artifacts_path,omitempty"`
	VectorizerExists *bool  `json:"vectorizer_exists,omitempty"`
	ModelExists      *bool  `json:"model_exists,omitempty"`
}

// StatusOffline is the status reported when the service cannot be reached
const StatusOffline = "offline"

// Offline returns the sentinel snapshot used when probing fails
func Offline() HealthStatus {
	return HealthStatus{Status: StatusOffline}
}

// Ready reports whether the service says its model is loaded
func (h HealthStatus) Ready() bool {
	return h.HybridReady != nil && *h.HybridReady
}

// VaderScores are the lexicon sub-scores attached to a result
type VaderScores struct {
	Label    string  `json:"label"`
	Compound float64 `json:"compound"`
	Pos      float64 `json:"pos"`
	Neu      float64 `json:"neu"`
	Neg      float64 `json:"neg"`
}

// ResultItem is one row of an /analyze response. The hybrid service
// names its fields final_sentiment and logreg_score; the plain form uses
// sentiment and score.
type ResultItem struct {
	Tweet              string       `json:"tweet"`
	Sentiment          string       `json:"sentiment,omitempty"`
	Score              *float64     `json:"score,omitempty"`
	FinalSentiment     string       `json:"final_sentiment,omitempty"`
	LogRegScore        *float64     `json:"logreg_score,omitempty"`
	LogisticRegression string       `json:"logistic_regression,omitempty"`
	Vader              *VaderScores `json:"vader,omitempty"`
}

// Label returns the sentiment label, preferring the plain field
func (r ResultItem) Label() string {
	if r.Sentiment != "" {
		return r.Sentiment
	}
	return r.FinalSentiment
}

// Confidence returns the confidence score, preferring the plain field
func (r ResultItem) Confidence() float64 {
	if r.Score != nil {
		return *r.Score
	}
	if r.LogRegScore != nil {
		return *r.LogRegScore
	}
	return 0
}

// DashboardSummary holds the averaged VADER sub-scores
type DashboardSummary struct {
	AverageCompound float64 `json:"average_compound"`
	AveragePos      float64 `json:"average_pos"`
	AverageNeu      float64 `json:"average_neu"`
	AverageNeg      float64 `json:"average_neg"`
	TotalTweets     int     `json:"total_tweets"`
}

// DashboardScore is the per-text VADER detail
type DashboardScore struct {
	Tweet    string  `json:"tweet"`
	Pos      float64 `json:"pos"`
	Neu      float64 `json:"neu"`
	Neg      float64 `json:"neg"`
	Compound float64 `json:"compound"`
	Label    string  `json:"label"`
}

// Dashboard is the /vader-dashboard payload
type Dashboard struct {
	Summary        DashboardSummary `json:"summary"`
	Distribution   map[string]int   `json:"distribution"`
	Scores         []DashboardScore `json:"scores"`
	CompoundValues []float64        `json:"compound_values"`
}

// errorBody is the FastAPI error envelope. detail is a string for
// HTTPException and a list for validation failures.
type errorBody struct {
	Detail any `json:"detail"`
}
