package combat

import "github.com/udisondev/hunters/internal/model"

// IneffectiveDivisor: an ineffective hit deals floor(damage * 0.2).
const IneffectiveDivisor = 5

// IneffectiveDamage returns floor(d * 0.2) for d >= 0. Always < d when d > 0.
func IneffectiveDamage(d int32) int32 {
	if d <= 0 {
		return 0
	}
	return d / IneffectiveDivisor
}

// CalcDamage returns the damage item deals with the given effectiveness.
func CalcDamage(item *model.ItemTemplate, effective bool) int32 {
	if effective {
		return max(item.Damage, 0)
	}
	return IneffectiveDamage(item.Damage)
}

// judgement is the effectiveness verdict for one item against one encounter.
type judgement struct {
	effective bool
	advances  bool // item is the next expected defeat-sequence element
}

// judge decides effectiveness of item against enc.
//
// While a defeat sequence is incomplete the next expected item is effective and
// advances progress; any other sequence item is ineffective and changes nothing.
// Finisher items bite only as the terminal step or once the sequence is done.
// Monsters that require preparation take ineffective damage until prepared.
func judge(item *model.ItemTemplate, enc *model.Encounter) judgement {
	tmpl := enc.Template()

	if tmpl.HasDefeatSequence() && !enc.SequenceComplete() {
		next, _ := enc.NextInSequence()
		if item.ID == next {
			return judgement{effective: true, advances: true}
		}
		if tmpl.InDefeatSequence(item.ID) {
			return judgement{}
		}
	}

	if item.Finisher && tmpl.HasDefeatSequence() && !enc.SequenceComplete() {
		return judgement{}
	}

	if !enc.Prepared() {
		return judgement{}
	}

	return judgement{effective: tmpl.HasWeakness(item.ID) || item.IsEffectiveAgainst(tmpl.ID)}
}
