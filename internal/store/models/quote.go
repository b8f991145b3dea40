package models

// GitaQuote is a Bhagavad Gita verse produced by the quote fetcher. It is
// never persisted as its own collection; on arrival it is folded into a
// notification title and message.
type GitaQuote struct {
	Verse       string `json:"verse"`
	Translation string `json:"translation"`
	Purport     string `json:"purport"`
	Chapter     int    `json:"chapter"`
	Text        int    `json:"text"` // verse number within the chapter
}
