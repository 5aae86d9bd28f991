package ml

// Faculty mapping for program classification.
var facultyMap = map[string]string{
	// SACE (School of Arts, Computing, and Engineering)
	"BACHELOR OF SCIENCE IN COMPUTER SCIENCE":        "SACE",
	"BACHELOR OF SCIENCE IN ARCHITECTURE":            "SACE",
	"BACHELOR OF SCIENCE IN INFORMATION TECHNOLOGY":  "SACE",
	"BACHELOR OF SCIENCE IN CIVIL ENGINEERING":       "SACE",

	// SAHS (School of Allied Health Sciences)
	"BACHELOR OF SCIENCE IN NURSING":            "SAHS",
	"BACHELOR OF SCIENCE IN MEDICAL TECHNOLOGY": "SAHS",
	"BACHELOR OF SCIENCE IN PSYCHOLOGY":         "SAHS",

	// SABM (School of Accountancy and Business Management)
	"BACHELOR OF SCIENCE IN ACCOUNTANCY":                                           "SABM",
	"BACHELOR OF SCIENCE IN BUSINESS ADMINISTRATION MAJOR IN MARKETING MANAGEMENT": "SABM",
	"BACHELOR OF SCIENCE IN BUSINESS ADMINISTRATION MAJOR IN FINANCIAL MANAGEMENT": "SABM",
	"BACHELOR OF SCIENCE IN TOURISM MANAGEMENT":                                    "SABM",
}

// Program abbreviations accepted on registration forms.
var programAbbreviations = map[string]string{
	"BSN":           "BACHELOR OF SCIENCE IN NURSING",
	"BSCE":          "BACHELOR OF SCIENCE IN CIVIL ENGINEERING",
	"BSMT":          "BACHELOR OF SCIENCE IN MEDICAL TECHNOLOGY",
	"BSPSY":         "BACHELOR OF SCIENCE IN PSYCHOLOGY",
	"BSA":           "BACHELOR OF SCIENCE IN ACCOUNTANCY",
	"BSACCOUNTANCY": "BACHELOR OF SCIENCE IN ACCOUNTANCY",
	"BSIT":          "BACHELOR OF SCIENCE IN INFORMATION TECHNOLOGY",
	"BSTM":          "BACHELOR OF SCIENCE IN TOURISM MANAGEMENT",
	"BSARCH":        "BACHELOR OF SCIENCE IN ARCHITECTURE",
	"BSBA-MKTGMGT":  "BACHELOR OF SCIENCE IN BUSINESS ADMINISTRATION MAJOR IN MARKETING MANAGEMENT",
	"BSBA-FINMGT":   "BACHELOR OF SCIENCE IN BUSINESS ADMINISTRATION MAJOR IN FINANCIAL MANAGEMENT",
	"BSCS":          "BACHELOR OF SCIENCE IN COMPUTER SCIENCE",
}

// Entry level frequencies observed in the training data.
var entryLevelFreq = map[string]int{
	"FRESHMAN":         18673,
	"TRANSFEREE":       1478,
	"2ND_DEGREE":       145,
	"CROSS_ENROLLEE":   41,
	"GRADUATE_STUDIES": 2,
}

// Top 20 provinces from the training data.
var top20Provinces = map[string]struct{}{
	"BATANGAS": {}, "LAGUNA": {}, "CAVITE": {}, "QUEZON": {}, "RIZAL": {},
	"MANILA": {}, "ORIENTAL MINDORO": {}, "BULACAN": {}, "ALBAY": {},
	"CAMARINES SUR": {}, "MARINDUQUE": {}, "ROMBLON": {}, "OCCIDENTAL MINDORO": {},
	"SORSOGON": {}, "CAMARINES NORTE": {}, "CATANDUANES": {}, "MASBATE": {},
	"TARLAC": {}, "NUEVA ECIJA": {}, "PALAWAN": {},
}

// Top 20 cities from the training data.
var top20Cities = map[string]struct{}{
	"LIPA": {}, "SAN JOSE": {}, "BATANGAS CITY": {}, "TANAUAN": {}, "SANTO TOMAS": {},
	"CALAMBA": {}, "SAN PABLO": {}, "BIÑAN": {}, "MALVAR": {}, "BAUAN": {},
	"LEMERY": {}, "NASUGBU": {}, "CANDELARIA": {}, "IBAAN": {}, "LOBO": {},
	"SAN LUIS": {}, "TAYSAN": {}, "MATAAS NA KAHOY": {}, "CUENCA": {}, "AGONCILLO": {},
}
