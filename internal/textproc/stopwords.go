package textproc

import "strings"

// englishStopwords is the fixed English stopword list.
var englishStopwords = strings.Fields(`
a about above after again against all am an and any are aren as at be
because been before being below between both but by can cannot could
couldn did didn do does doesn doing don down during each few for from
further had hadn has hasn have haven having he her here hers herself him
himself his how i if in into is isn it its itself just ll me more most
mustn my myself no nor not now of off on once only or other our ours
ourselves out over own re s same shan she should shouldn so some such t
than that the their theirs them themselves then there these they this
those through to too under until up ve very was wasn we were weren what
when where which while who whom why will with won would wouldn you your
yours yourself yourselves
`)

// documentStopwords are boilerplate terms common to every document class;
// keeping them would only add corpus noise.
var documentStopwords = strings.Fields(`
page document file pdf doc docx txt copyright rights reserved company inc
ltd www http https com org net
`)

var stopwords = buildStopwordSet()

func buildStopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(englishStopwords)+len(documentStopwords))
	for _, w := range englishStopwords {
		set[w] = struct{}{}
	}
	for _, w := range documentStopwords {
		set[w] = struct{}{}
	}
	return set
}
