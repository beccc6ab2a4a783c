package domain

// storefronts maps Apple storefront identifiers to display country names.
// The list covers the storefronts accounts are commonly registered in; an
// unknown code is reported as such by StoreIDToCountry rather than guessed.
var storefronts = map[string]string{
	"143441": "United States",
	"143442": "France",
	"143443": "Germany",
	"143444": "United Kingdom",
	"143445": "Austria",
	"143446": "Belgium",
	"143447": "Finland",
	"143448": "Greece",
	"143449": "Ireland",
	"143450": "Italy",
	"143451": "Luxembourg",
	"143452": "Netherlands",
	"143453": "Portugal",
	"143454": "Spain",
	"143455": "Canada",
	"143456": "Sweden",
	"143457": "Norway",
	"143458": "Denmark",
	"143459": "Switzerland",
	"143460": "Australia",
	"143461": "New Zealand",
	"143462": "Japan",
	"143463": "Hong Kong",
	"143464": "Singapore",
	"143465": "China",
	"143466": "South Korea",
	"143467": "India",
	"143468": "Mexico",
	"143469": "Russia",
	"143470": "Taiwan",
	"143471": "Vietnam",
	"143472": "South Africa",
	"143473": "Malaysia",
	"143474": "Philippines",
	"143475": "Thailand",
	"143476": "Indonesia",
	"143477": "Pakistan",
	"143478": "Poland",
	"143479": "Saudi Arabia",
	"143480": "Turkey",
	"143481": "United Arab Emirates",
	"143482": "Hungary",
	"143483": "Chile",
	"143484": "Nepal",
	"143485": "Panama",
	"143486": "Sri Lanka",
	"143487": "Romania",
	"143489": "Czech Republic",
	"143492": "Israel",
	"143493": "Ukraine",
	"143494": "Kuwait",
	"143495": "Croatia",
	"143498": "Slovakia",
	"143499": "Slovenia",
	"143501": "Colombia",
	"143502": "Argentina",
	"143503": "El Salvador",
	"143505": "Brazil",
	"143509": "Bolivia",
	"143512": "Ecuador",
	"143514": "Greenland",
	"143516": "Nicaragua",
	"143524": "Peru",
	"143532": "Uruguay",
	"143556": "Iceland",
	"143568": "Egypt",
}

// StoreIDToCountry resolves a storefront code to its display country name.
// The second return value is false for codes not in the table.
func StoreIDToCountry(storeID string) (string, bool) {
	country, ok := storefronts[storeID]
	return country, ok
}
