package strategies

import (
	"regexp"

	"github.com/samber/lo"

	"github.com/arthur-debert/scaraplate/pkg/inidoc"
	"github.com/arthur-debert/scaraplate/pkg/requirements"
)

type keyRef struct {
	section string
	key     string
}

// sectionRule carries a whole target section over into the template.
// Keys matching keepTemplateKeys keep the template's value instead.
type sectionRule struct {
	pattern          *regexp.Regexp
	keepTemplateKeys *regexp.Regexp
}

// preserveKey copies one value from target into tmpl. A missing section
// or key in target leaves tmpl as is.
func preserveKey(tmpl, target *inidoc.Document, ref keyRef) {
	value, ok := target.Get(ref.section, ref.key)
	if !ok {
		return
	}
	tmpl.Set(ref.section, ref.key, value)
}

// preserveSections replaces template sections with the target sections
// of the same name, for every target section matched by a rule. Rules
// are tried in order and the first match applies.
func preserveSections(tmpl, target *inidoc.Document, rules []sectionRule) {
	for _, name := range target.Sections() {
		rule, ok := lo.Find(rules, func(r sectionRule) bool { return r.pattern.MatchString(name) })
		if !ok {
			continue
		}

		section := target.Section(name).Clone(name)
		if original := tmpl.Section(name); original != nil && rule.keepTemplateKeys != nil {
			for _, key := range original.Keys() {
				if rule.keepTemplateKeys.MatchString(key) {
					value, _ := original.Get(key)
					section.Set(key, value)
				}
			}
		}
		tmpl.PutSection(section)
	}
}

// mergeRequirements writes the merge of the target's and the template's
// requirement lists under ref in tmpl, creating the section if needed.
// target may be nil.
func mergeRequirements(tmpl, target *inidoc.Document, ref keyRef) {
	templateReqs := requirementsAt(tmpl, ref)
	var targetReqs []string
	if target != nil {
		targetReqs = requirementsAt(target, ref)
	}

	merged := requirements.Merge(targetReqs, templateReqs)
	tmpl.Set(ref.section, ref.key, requirements.Dump(merged))
}

func requirementsAt(doc *inidoc.Document, ref keyRef) []string {
	value, ok := doc.Get(ref.section, ref.key)
	if !ok {
		return nil
	}
	return requirements.Parse(value)
}
