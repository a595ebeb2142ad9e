package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type ImageKind string

const (
	ImageKindLandmark ImageKind = "landmark"
	ImageKindHotel    ImageKind = "hotel"
)

const imageSearchBase = "https://source.unsplash.com/800x600/"

type keywordTerm struct {
	keyword string
	terms   string
}

// Ordered: the first matching keyword wins, so longer names precede their prefixes.
var placeImageTerms = []keywordTerm{
	{"gateway of india", "gateway+of+india+mumbai+monument+architecture+india"},
	{"marine drive", "marine+drive+mumbai+queens+necklace+seafront+night"},
	{"elephanta caves", "elephanta+caves+mumbai+unesco+heritage+sculpture"},
	{"juhu beach", "juhu+beach+mumbai+sunset+seaside"},
	{"siddhivinayak temple", "siddhivinayak+temple+mumbai+ganesh+religious"},
	{"haji ali dargah", "haji+ali+dargah+mumbai+mosque+island"},
	{"bandra worli sea link", "bandra+worli+sea+link+mumbai+bridge+architecture"},
	{"crawford market", "crawford+market+mumbai+shopping+heritage"},

	{"red fort", "red+fort+delhi+unesco+heritage+monument+mughal"},
	{"india gate", "india+gate+delhi+war+memorial+monument+night"},
	{"qutub minar", "qutub+minar+delhi+unesco+heritage+tower+minaret"},
	{"lotus temple", "lotus+temple+delhi+bahai+house+worship+architecture"},
	{"jama masjid", "jama+masjid+delhi+mosque+mughal+architecture"},
	{"humayuns tomb", "humayun+tomb+delhi+unesco+heritage+mausoleum"},
	{"akshardham temple", "akshardham+temple+delhi+swaminarayan+architecture"},
	{"chandni chowk", "chandni+chowk+delhi+market+street+heritage"},

	{"lalbagh", "lalbagh+botanical+garden+bangalore+glass+house+flowers"},
	{"cubbon park", "cubbon+park+bangalore+green+space+statue"},
	{"vidhana soudha", "vidhana+soudha+bangalore+government+building+architecture"},
	{"bangalore palace", "bangalore+palace+karnataka+royal+architecture"},
	{"iskcon temple", "iskcon+temple+bangalore+krishna+religious"},
	{"ulsoor lake", "ulsoor+lake+bangalore+water+serene"},
	{"commercial street", "commercial+street+bangalore+shopping+market"},
	{"nandi hills", "nandi+hills+bangalore+sunrise+viewpoint"},

	{"museum", "museum+interior+exhibition+art+history"},
	{"temple", "temple+religious+architecture+spiritual"},
	{"beach", "beach+seaside+ocean+sunset"},
	{"park", "park+green+space+nature+trees"},
	{"market", "market+shopping+street+vendors"},
	{"mountain", "mountain+peak+landscape+scenic"},
	{"lake", "lake+water+serene+reflection"},
	{"garden", "garden+flowers+plants+beautiful"},
}

var hotelImageTerms = []keywordTerm{
	{"taj palace", "taj+palace+mumbai+hotel+luxury+accommodation+heritage"},
	{"taj", "taj+palace+hotel+luxury+accommodation+heritage"},
	{"oberoi", "oberoi+mumbai+hotel+luxury+accommodation+premium"},
	{"itc maratha", "itc+maratha+mumbai+hotel+luxury+accommodation"},
	{"four seasons", "four+seasons+hotel+luxury+accommodation+premium"},
	{"ritz carlton", "ritz+carlton+hotel+luxury+accommodation+premium"},
	{"jw marriott", "jw+marriott+hotel+luxury+accommodation"},
	{"hyatt regency", "hyatt+regency+hotel+luxury+accommodation"},

	{"marriott", "marriott+hotel+accommodation+mid+range"},
	{"hyatt", "hyatt+hotel+accommodation+mid+range"},
	{"hilton", "hilton+hotel+accommodation+mid+range"},
	{"courtyard", "courtyard+marriott+hotel+accommodation"},
	{"hampton inn", "hampton+inn+hotel+accommodation"},
	{"holiday inn", "holiday+inn+hotel+accommodation+mid+range"},

	{"ibis", "ibis+hotel+budget+accommodation+affordable"},
	{"comfort inn", "comfort+inn+hotel+budget+accommodation"},
	{"travelodge", "travelodge+hotel+budget+accommodation"},
	{"days inn", "days+inn+hotel+budget+accommodation"},
}

var (
	nonWordRe         = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	apostropheRemover = strings.NewReplacer("'", "", "\u2019", "")
)

// normalizeImageKey lowercases and strips punctuation, so "Ritz-Carlton" and
// "ritz carlton" probe the same keyword.
func normalizeImageKey(s string) string {
	cleaned := nonWordRe.ReplaceAllString(apostropheRemover.Replace(strings.ToLower(s)), " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// ResolveImage maps a place or hotel name to a best-effort photo URL. It never
// fails and never touches the network.
func ResolveImage(name, location string, kind ImageKind, seed int) string {
	key := normalizeImageKey(name)
	loc := normalizeImageKey(location)

	var terms string
	if kind == ImageKindHotel {
		if match, ok := lookupTerms(hotelImageTerms, key); ok {
			terms = joinTerms(match, loc)
		} else {
			terms = joinTerms(key, loc, "hotel accommodation exterior")
		}
	} else {
		if match, ok := lookupTerms(placeImageTerms, key); ok {
			terms = match
		} else {
			terms = joinTerms(key, loc, string(kind), "architecture")
		}
	}
	return fmt.Sprintf("%s?%s&sig=%d", imageSearchBase, terms, seed)
}

func lookupTerms(table []keywordTerm, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	for _, t := range table {
		if t.keyword == key {
			return t.terms, true
		}
	}
	for _, t := range table {
		if strings.Contains(key, t.keyword) || strings.Contains(t.keyword, key) {
			return t.terms, true
		}
	}
	return "", false
}

// joinTerms turns the words of every part into a '+'-separated, query-safe list.
func joinTerms(parts ...string) string {
	var words []string
	for _, part := range parts {
		for _, word := range strings.Fields(strings.ReplaceAll(part, "+", " ")) {
			words = append(words, url.QueryEscape(word))
		}
	}
	return strings.Join(words, "+")
}
