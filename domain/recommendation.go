package domain

// PriceRange is an inclusive [Min, Max] price filter.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

func (r PriceRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// PreferenceProfile is the caller's stated taste for one request.
type PreferenceProfile struct {
	Categories []string
	Brands     []string
	PriceRange *PriceRange
}

// Candidate is a recommended product. A nil Score means the product was
// picked without a numeric ranking.
type Candidate struct {
	Product Product
	Score   *float64
}

type CandidateView struct {
	Product ProductView `json:"product"`
	Score   *float64    `json:"score"`
}

func (c Candidate) View(language string) CandidateView {
	return CandidateView{
		Product: c.Product.View(language),
		Score:   c.Score,
	}
}

func CandidateViews(candidates []Candidate, language string) []CandidateView {
	out := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.View(language))
	}
	return out
}

// RemoteRecommendation is one normalized entry from the external recommender.
// A nil Score means the service returned the product unscored.
type RemoteRecommendation struct {
	ProductID string
	Score     *float64
}
