package sources

const (
	meterURL         = "https://dining.ucla.edu/wp-content/plugins/activity-meter/activity_ajax.php?location_id="
	facilityCountURL = "https://goboardapi.azurewebsites.net/api/FacilityCount/GetCountsByAccount?AccountAPIKey=73829a91-48cb-4b7b-bd0b-8cf4134c04cd"
)

// Sources is the catalog of upstream endpoints and name mappings the
// collectors and the activity client work from. The built-in defaults cover
// the full campus; a YAML file can override individual entries.
type Sources struct {
	BaseURL   string `yaml:"base_url"`
	HoursURL  string `yaml:"hours_url"`
	TrucksURL string `yaml:"trucks_url"`

	// Halls maps hall codes to their menu page URLs.
	Halls map[string]string `yaml:"halls"`

	// Aliases maps location names as posted upstream to hall codes. Several
	// names can point at the same code because pages are inconsistent about
	// what they call a hall.
	Aliases map[string]string `yaml:"aliases"`

	// Activity maps location ids to their live occupancy endpoints.
	Activity map[string]string `yaml:"activity"`

	// GymFacilities maps gym location ids to the facility names used by the
	// shared counts endpoint. Ids present here are treated as gyms.
	GymFacilities map[string]string `yaml:"gym_facilities"`
}

// Default returns the built-in catalog.
func Default() Sources {
	return Sources{
		BaseURL:   "https://dining.ucla.edu",
		HoursURL:  "https://dining.ucla.edu/dining-locations/",
		TrucksURL: "https://dining.ucla.edu/meal-swipe-exchange/",
		Halls: map[string]string{
			"b-plate":       "https://dining.ucla.edu/bruin-plate/",
			"de-neve":       "https://dining.ucla.edu/de-neve-dining/",
			"epic-covel":    "https://dining.ucla.edu/epicuria-at-covel/",
			"epic-ackerman": "https://dining.ucla.edu/epicuria-at-ackerman/",
			"drey":          "https://dining.ucla.edu/the-drey/",
			"study":         "https://dining.ucla.edu/the-study-at-hedrick/",
			"rende":         "https://dining.ucla.edu/rendezvous/",
			"b-cafe":        "https://dining.ucla.edu/bruin-cafe/",
			"cafe-1919":     "https://dining.ucla.edu/cafe-1919/",
			"feast":         "https://dining.ucla.edu/spice-kitchen/",
		},
		Aliases: map[string]string{
			"Bruin Plate":                 "b-plate",
			"Sproul Dining":               "b-plate",
			"De Neve Dining":              "de-neve",
			"Epicuria at Covel":           "epic-covel",
			"Covel Dining":                "epic-covel",
			"Epicuria at Ackerman":        "epic-ackerman",
			"The Drey":                    "drey",
			"The Study at Hedrick":        "study",
			"Rendezvous":                  "rende",
			"Bruin Café":                  "b-cafe",
			"Café 1919":                   "cafe-1919",
			"Spice Kitchen at Bruin Bowl": "feast",
		},
		Activity: map[string]string{
			"b-plate":       meterURL + "864",
			"de-neve":       meterURL + "866",
			"epic-covel":    meterURL + "864",
			"epic-ackerman": meterURL + "874",
			"drey":          meterURL + "869",
			"study":         meterURL + "871",
			"rende":         meterURL + "870",
			"b-cafe":        meterURL + "867",
			"cafe-1919":     meterURL + "867",
			"feast":         meterURL + "872",
			"b-fit":         facilityCountURL,
			"wooden":        facilityCountURL,
			"kinross":       facilityCountURL,
		},
		GymFacilities: map[string]string{
			"b-fit":   "Bruin Fitness Center - FITWELL",
			"wooden":  "John Wooden Center - FITWELL",
			"kinross": "Kinross Rec Center - FITWELL",
		},
	}
}
