package model

type ChordInfo struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Intervals []int  `json:"intervals"`
}
