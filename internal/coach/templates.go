package coach

// DefaultLanguage is used when a report or chat asks for a language that has
// no templates.
const DefaultLanguage = "en"

// reportTemplates holds every fixed string a report can be assembled from.
// Strings with a verb take the score (or counts) through fmt.
type reportTemplates struct {
	insufficient string
	summary      string // valid shots, clubs
	strike       string
	face         string
	distance     string
	dispersion   string
	solid        string

	interpretationPrefix string
	lowEnergy            string
	stress               string
	late                 string
	keepLogging          string

	strikeDrill    string
	faceConstraint string
	maintain       string

	validation string
	next       string
}

var reportLanguages = map[string]reportTemplates{
	"en": {
		insufficient: "Insufficient data for analysis.",
		summary:      "Session contained %d valid shots across %d clubs.",
		strike:       "Strike quality needs attention (score: %.0f).",
		face:         "Face control variance detected (score: %.0f).",
		distance:     "Distance control inconsistent (score: %.0f).",
		dispersion:   "Dispersion pattern wider than target (score: %.0f).",
		solid:        "All core metrics within solid range. Focus on maintaining consistency.",

		lowEnergy:   "Low energy reported may be affecting swing mechanics.",
		stress:      "Stress indicator detected - this often correlates with tension patterns.",
		late:        "Late timing feel may explain face-to-path variance.",
		keepLogging: "Continue to log subjective data to enable deeper correlation analysis.",

		strikeDrill:    "Drill: 10 half-speed swings focusing on center contact. Feel the ball compress.",
		faceConstraint: "Constraint: Close eyes on backswing to reduce visual interference with face awareness.",
		maintain:       "Maintain current practice structure. Consider adding pressure element (score targets).",

		validation: "Success metric: Face-to-path variance under 2° on next session. Monitor smash factor return to 1.41+ baseline.",
		next:       "Short session tomorrow: 20 balls, 7-iron only, with pause drill. Log energy and feel before starting.",
	},
	"no": {
		insufficient: "Utilstrekkelig data for analyse.",
		summary:      "Økten inneholdt %d gyldige slag med %d køller.",
		strike:       "Treffkvalitet trenger oppmerksomhet (score: %.0f).",
		face:         "Variasjon i bladkontroll oppdaget (score: %.0f).",
		distance:     "Lengdekontrollen er ujevn (score: %.0f).",
		dispersion:   "Spredningen er bredere enn målet (score: %.0f).",
		solid:        "Alle kjerneverdier er på et solid nivå. Fokuser på å holde konsistensen.",

		interpretationPrefix: "Subjektive data korrelert med metrics.",
		lowEnergy:            "Lav energi kan påvirke svingmekanikken.",
		stress:               "Stressindikator registrert - dette henger ofte sammen med spenningsmønstre.",
		late:                 "Følelse av sen timing kan forklare variasjon i face-to-path.",
		keepLogging:          "Fortsett å logge subjektive data for å muliggjøre dypere korrelasjonsanalyse.",

		strikeDrill:    "Øvelse: 10 svinger i halv fart med fokus på senterkontakt. Kjenn at ballen komprimeres.",
		faceConstraint: "Begrensning: Lukk øynene i baksvingen for å redusere visuell forstyrrelse av bladfølelsen.",
		maintain:       "Behold nåværende treningsstruktur. Vurder å legge til et presselement (poengmål).",

		validation: "Suksessmål: Face-to-path under 2° på neste økt. Monitor: Smash factor bør returnere til 1.41+ baseline.",
		next:       "Kort økt i morgen: 20 baller, kun 7-jern, med pause-drill. Logg energi og følelse før start.",
	},
}

// Languages lists the language codes with report templates.
func Languages() []string {
	return []string{"en", "no"}
}

// ResolveLanguage returns lang when it has templates, DefaultLanguage
// otherwise.
func ResolveLanguage(lang string) string {
	if _, ok := reportLanguages[lang]; ok {
		return lang
	}
	return DefaultLanguage
}
