package model

type Lesson struct {
	ID       string  `json:"id"`
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Spaces   int     `json:"spaces"`
	Image    string  `json:"image"`
}
