//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// CorpusEntry - one record of the cleaned corpus file; field order is the on-disk key order
type CorpusEntry struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// CourseRecord - a row of the live Courses table
type CourseRecord struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Rating      float64     `json:"rating"`
	Hours       float64     `json:"hours"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
	PriceDetail PriceDetail `json:"priceDetail"`
}

type PriceDetail struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currencySymbol"`
	PriceString    string  `json:"priceString"`
}
