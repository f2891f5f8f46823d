package dto

type ScholarResponse struct {
	Id              string   `json:"id"`
	Name            string   `json:"name"`
	BirthYear       *int     `json:"birthYear,omitempty"`
	DeathYear       *int     `json:"deathYear,omitempty"`
	Century         int      `json:"century"`
	Madhab          string   `json:"madhab,omitempty"`
	Period          string   `json:"period,omitempty"`
	Environment     string   `json:"environment,omitempty"`
	OriginCountry   string   `json:"originCountry,omitempty"`
	ReputationScore *float64 `json:"reputationScore,omitempty"`
}

type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type ScaleRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type FilterFacets struct {
	Centuries      []int      `json:"centuries"`
	Madhabs        []string   `json:"madhabs"`
	Periods        []string   `json:"periods"`
	Environments   []string   `json:"environments"`
	Countries      []string   `json:"countries"`
	BirthYearRange *YearRange `json:"birthYearRange,omitempty"`
	DeathYearRange *YearRange `json:"deathYearRange,omitempty"`
}

type FilterOptionsResponse struct {
	Scholars           []ScholarResponse `json:"scholars"`
	FilterOptions      FilterFacets      `json:"filterOptions"`
	ToneRange          ScaleRange        `json:"toneRange"`
	IntellectRange     ScaleRange        `json:"intellectRange"`
	SupportedLanguages []string          `json:"supportedLanguages"`
}
