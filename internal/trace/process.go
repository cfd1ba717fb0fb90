package trace

// process reduces a run's raw record stream to its processed form
// (spec §4.3): scalar-pair records (and the headers among them) pass
// through verbatim; every other site-visit record is deduplicated
// against its immediate predecessor in that same filtered stream; and
// a transition table is built from the run's full site sequence,
// headers excluded.
func process(records []rawRecord, classifier Classifier) ProcessedRun {
	p := ProcessedRun{}

	var prevOther *SiteVisit
	var prevSite *int
	seenTransition := make(map[Transition]bool)

	for _, rec := range records {
		if rec.header {
			p.ScalarPairs = append(p.ScalarPairs, rec)
			continue
		}

		site := rec.visit.Site
		if prevSite != nil {
			t := Transition{From: *prevSite, To: site}
			if *prevSite != site && !seenTransition[t] {
				seenTransition[t] = true
				p.Transitions = append(p.Transitions, t)
			}
		}
		prevSite = &site

		if classifier.Kind(site) == ScalarPair {
			p.ScalarPairs = append(p.ScalarPairs, rec)
			prevOther = nil
			continue
		}

		if prevOther != nil && sameVisit(*prevOther, rec.visit) {
			p.OtherSites[len(p.OtherSites)-1].Count++
			continue
		}
		p.OtherSites = append(p.OtherSites, Aggregated{Visit: rec.visit, Count: 1})
		v := rec.visit
		prevOther = &v
	}
	return p
}

func sameVisit(a, b SiteVisit) bool {
	if a.Site != b.Site || len(a.Info) != len(b.Info) {
		return false
	}
	for i := range a.Info {
		if a.Info[i] != b.Info[i] {
			return false
		}
	}
	return true
}
