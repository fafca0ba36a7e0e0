package schema

import (
	"sort"
	"strings"
)

// DomainEntry pairs an integer code with its English and French labels
// (spec.md §3 "Domains": "a finite mapping from canonical English label ->
// integer code plus a parallel French-label -> same code mapping").
type DomainEntry struct {
	Code int
	EN   string
	FR   string
}

// Domain is a small (<100 entries, per the Design Notes) controlled
// vocabulary, stored sorted by lowercase English label. Lookup and Label
// scan the entries linearly.
type Domain struct {
	Name    string
	Entries []DomainEntry
}

// sortedByLabel returns entries sorted by their lowercase label, used to
// build the case-insensitive lookup described in the Design Notes. French
// accented characters compare correctly under Go's default string
// ordering for NFC-normalized input, which is how the domain tables below
// are written.
func sortedByLabel(entries []DomainEntry) []DomainEntry {
	out := append([]DomainEntry(nil), entries...)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].EN) < strings.ToLower(out[j].EN)
	})
	return out
}

// Lookup resolves a raw value (either language's label, case-insensitive,
// or the bare integer code as a string) to its canonical code. ok is false
// when the value matches nothing in the domain.
func (d Domain) Lookup(raw string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, e := range d.Entries {
		if strings.ToLower(e.EN) == lower || strings.ToLower(e.FR) == lower {
			return e.Code, true
		}
	}
	// Accept the code itself, already-conformed (idempotence: §8 "Running
	// S4 twice yields a result equal to running it once").
	for _, e := range d.Entries {
		if codeString(e.Code) == lower {
			return e.Code, true
		}
	}
	return 0, false
}

// Label returns the label for a code in the given language, or false if
// the code isn't a member of the domain.
func (d Domain) Label(code int, lang Lang) (string, bool) {
	for _, e := range d.Entries {
		if e.Code == code {
			if lang == LangFR {
				return e.FR, true
			}
			return e.EN, true
		}
	}
	return "", false
}

func codeString(code int) string {
	if code == 0 {
		return "0"
	}
	neg := code < 0
	n := code
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// DomainSet is the registry's full collection of named domains.
type DomainSet struct {
	domains map[string]Domain
}

// NewDomainSet builds every controlled vocabulary registered in spec.md
// §3 ("Domains"). Values are grounded on the field names and categories
// the original goatsweater/nrn-rrn field_domains_en.yaml / _fr.yaml
// declare; this Go rendering stores them as literal tables rather than
// loading YAML at startup, per the Design Notes ("Domain maps are small
// and can be stored as sorted arrays").
func NewDomainSet() *DomainSet {
	ds := &DomainSet{domains: make(map[string]Domain)}
	add := func(name string, entries ...DomainEntry) {
		ds.domains[name] = Domain{Name: name, Entries: sortedByLabel(entries)}
	}

	add("acqtech",
		DomainEntry{1, "Other", "Autre"},
		DomainEntry{2, "GPS", "GPS"},
		DomainEntry{3, "Orthoimage", "Orthoimage"},
		DomainEntry{4, "Digitized cartographic source", "Source cartographique numérisée"},
		DomainEntry{7, "Computed", "Calculé"},
		DomainEntry{8, "Field completion", "Complétée sur le terrain"},
	)

	add("metacover",
		DomainEntry{1, "Complete", "Complète"},
		DomainEntry{2, "Partial", "Partielle"},
	)

	add("provider",
		DomainEntry{1, "Federal", "Fédéral"},
		DomainEntry{2, "Provincial / Territorial", "Provincial / Territorial"},
		DomainEntry{3, "Municipal", "Municipal"},
		DomainEntry{4, "Other", "Autre"},
	)

	add("datasetnam",
		DomainEntry{1, "Alberta", "Alberta"},
		DomainEntry{2, "British Columbia", "Colombie-Britannique"},
		DomainEntry{3, "Manitoba", "Manitoba"},
		DomainEntry{4, "New Brunswick", "Nouveau-Brunswick"},
		DomainEntry{5, "Newfoundland and Labrador", "Terre-Neuve-et-Labrador"},
		DomainEntry{6, "Nova Scotia", "Nouvelle-Écosse"},
		DomainEntry{7, "Northwest Territories", "Territoires du Nord-Ouest"},
		DomainEntry{8, "Nunavut", "Nunavut"},
		DomainEntry{9, "Ontario", "Ontario"},
		DomainEntry{10, "Prince Edward Island", "Île-du-Prince-Édouard"},
		DomainEntry{11, "Quebec", "Québec"},
		DomainEntry{12, "Saskatchewan", "Saskatchewan"},
		DomainEntry{13, "Yukon", "Yukon"},
	)

	add("blkpassty",
		DomainEntry{0, "Unknown", "Inconnu"},
		DomainEntry{1, "Bollards", "Bornes"},
		DomainEntry{2, "Removable bollard", "Borne amovible"},
		DomainEntry{3, "Gate", "Barrière"},
		DomainEntry{4, "Block", "Blocage"},
		DomainEntry{5, "Ditch", "Fossé"},
		DomainEntry{6, "Earth berm", "Talus de terre"},
		DomainEntry{7, "Guard rail", "Glissière de sécurité"},
		DomainEntry{8, "Concrete Blocks or Jersey Barrier", "Blocs de béton ou barrière de Jersey"},
		DomainEntry{9, "Water Barrier", "Barrière d'eau"},
		DomainEntry{10, "Fence", "Clôture"},
	)

	add("junctype",
		DomainEntry{1, "Intersection", "Intersection"},
		DomainEntry{2, "Dead End", "Cul-de-sac"},
		DomainEntry{3, "Ferry", "Liaison par transbordeur"},
		DomainEntry{4, "NatProvTer", "NatProvTer"},
	)

	add("roadclass",
		DomainEntry{1, "Freeway", "Autoroute"},
		DomainEntry{2, "Expressway / Highway", "Route express/Autoroute"},
		DomainEntry{3, "Arterial", "Artère"},
		DomainEntry{4, "Collector", "Collectrice"},
		DomainEntry{5, "Local / Street", "Locale/Rue"},
		DomainEntry{6, "Local / Strata", "Locale/Condominiale"},
		DomainEntry{7, "Local / Unknown", "Locale/Inconnue"},
		DomainEntry{8, "Alleyway / Lane", "Ruelle/Voie"},
		DomainEntry{9, "Ramp", "Bretelle"},
		DomainEntry{10, "Resource / Recreation", "Ressource/Récréation"},
		DomainEntry{11, "Rapid Transit", "Transport rapide"},
		DomainEntry{12, "Service Lane", "Voie de service"},
		DomainEntry{13, "Winter", "Route d'hiver"},
	)

	add("structtype",
		DomainEntry{1, "None", "Aucune"},
		DomainEntry{2, "Bridge", "Pont"},
		DomainEntry{3, "Bridge covered", "Pont couvert"},
		DomainEntry{4, "Bridge moveable", "Pont mobile"},
		DomainEntry{5, "Bridge unclassified", "Pont non classifié"},
		DomainEntry{6, "Bridge ice", "Pont de glace"},
		DomainEntry{7, "Tunnel", "Tunnel"},
		DomainEntry{8, "Snowshed", "Paravalanche"},
		DomainEntry{9, "Dam", "Barrage"},
	)

	add("trafficdir",
		DomainEntry{1, "Both directions", "Bidirectionnelle"},
		DomainEntry{2, "Same direction", "Unidirectionnelle même sens"},
		DomainEntry{3, "Opposite direction", "Unidirectionnelle sens opposé"},
	)

	add("pavsurf",
		DomainEntry{1, "Rigid", "Rigide"},
		DomainEntry{2, "Flexible", "Flexible"},
		DomainEntry{3, "Blocks", "Pavés"},
	)

	add("pavstatus",
		DomainEntry{1, "Paved", "Revêtue"},
		DomainEntry{2, "Unpaved", "Non revêtue"},
	)

	add("unpavsurf",
		DomainEntry{1, "Gravel", "Gravier"},
		DomainEntry{2, "Dirt", "Terre"},
	)

	add("closing",
		DomainEntry{1, "None", "Aucune"},
		DomainEntry{2, "Seasonal", "Saisonnière"},
		DomainEntry{3, "Winter only", "Hivernale seulement"},
	)

	add("tollpttype",
		DomainEntry{0, "Unknown", "Inconnu"},
		DomainEntry{1, "Physical toll booth", "Poste de péage physique"},
		DomainEntry{2, "Hwy. 407 ETR", "Route 407 TÉR"},
		DomainEntry{3, "Toll gate / barrier", "Barrière de péage"},
	)

	add("placetype",
		DomainEntry{1, "City", "Cité"},
		DomainEntry{2, "Hamlet", "Hameau"},
		DomainEntry{3, "Indian reserve", "Réserve indienne"},
		DomainEntry{4, "Municipality", "Municipalité"},
		DomainEntry{5, "Resort municipality", "Municipalité de villégiature"},
		DomainEntry{6, "Rural municipality", "Municipalité rurale"},
		DomainEntry{7, "Town", "Ville"},
		DomainEntry{8, "Village", "Village"},
	)

	add("strtype",
		DomainEntry{1, "Avenue", "Avenue"},
		DomainEntry{2, "Boulevard", "Boulevard"},
		DomainEntry{3, "Crescent", "Croissant"},
		DomainEntry{4, "Drive", "Promenade"},
		DomainEntry{5, "Lane", "Allée"},
		DomainEntry{6, "Road", "Chemin"},
		DomainEntry{7, "Street", "Rue"},
		DomainEntry{8, "Highway", "Route"},
	)

	add("starticle",
		DomainEntry{1, "The", "La"},
		DomainEntry{2, "Le", "Le"},
		DomainEntry{3, "Les", "Les"},
		DomainEntry{4, "L'", "L'"},
	)

	add("muniquad",
		DomainEntry{1, "North", "Nord"},
		DomainEntry{2, "South", "Sud"},
		DomainEntry{3, "East", "Est"},
		DomainEntry{4, "West", "Ouest"},
		DomainEntry{5, "Northwest", "Nord-Ouest"},
		DomainEntry{6, "Northeast", "Nord-Est"},
		DomainEntry{7, "Southwest", "Sud-Ouest"},
		DomainEntry{8, "Southeast", "Sud-Est"},
	)

	add("hnumsuf",
		DomainEntry{1, "None", "Aucun"},
		DomainEntry{2, "A", "A"},
		DomainEntry{3, "B", "B"},
		DomainEntry{4, "1/2", "1/2"},
	)

	add("hnumtype",
		DomainEntry{1, "Actual Located", "Situé réel"},
		DomainEntry{2, "Actual Unlocated", "Non situé réel"},
		DomainEntry{3, "Projected", "Projeté"},
		DomainEntry{4, "Interpolated", "Interpolé"},
	)

	add("rfsystem",
		DomainEntry{1, "Civic", "Civique"},
		DomainEntry{2, "Street frontage", "Façade de rue"},
		DomainEntry{3, "Unknown", "Inconnu"},
	)

	add("digdir",
		DomainEntry{1, "Same direction", "Même direction"},
		DomainEntry{2, "Opposite direction", "Direction opposée"},
	)

	return ds
}

// Domain returns the named domain, or false if unregistered.
func (ds *DomainSet) Domain(name string) (Domain, bool) {
	d, ok := ds.domains[name]
	return d, ok
}
