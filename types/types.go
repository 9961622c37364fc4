package types

// ImagePair is one data row of the input file
type ImagePair struct {
	Image1 string
	Image2 string
	Line   int // 1-based data row number, header excluded
}

// ResultRecord holds the score and timing for one successfully compared pair
type ResultRecord struct {
	Image1  string  `json:"image1"`
	Image2  string  `json:"image2"`
	Similar float64 `json:"similar"`
	Elapsed float64 `json:"elapsed"` // seconds
	Line    int     `json:"line"`
}
