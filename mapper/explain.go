package mapper

import (
	"fmt"

	"reflex/internal/common"
	"reflex/internal/diagnostic"
	"reflex/internal/match"
	"reflex/introspect"
)

// Explain describes, member by member, what CopyMembers(src, target) would do.
// Nothing is written, so target may be a struct value as well as a pointer.
func (m *Mapper) Explain(src any, target any) (diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	srcType, err := introspect.TypeOf(src)
	if err != nil {
		return diags, fmt.Errorf("source: %w", err)
	}

	dstType, err := introspect.TypeOf(target)
	if err != nil {
		return diags, fmt.Errorf("target: %w", err)
	}

	typePair := common.TypeName(srcType) + " -> " + common.TypeName(dstType)
	targets := introspect.TypeMembers(dstType, introspect.Default)
	byName := make(map[string]*introspect.MemberDescriptor, len(targets))
	for _, member := range targets {
		byName[member.Name] = member
	}

	matched := make(map[string]bool, len(targets))
	for _, source := range introspect.TypeMembers(srcType, introspect.Default) {
		member, ok := byName[source.Name]
		if !ok {
			diags.AddWarning(diagnostic.CodeMissing, "no member of that name on the target, skipped",
				typePair, source.Name, suggest(source, targets)...)
			continue
		}
		matched[member.Name] = true

		if !member.CanWrite {
			diags.AddWarning(diagnostic.CodeNotWritable, "target member is not writable, skipped", typePair, source.Name)
			continue
		}

		compat := match.ScoreTypeCompatibility(source.Type, member.Type)
		message := fmt.Sprintf("%s to %s: %s", common.TypeName(source.Type), common.TypeName(member.Type), compat.Reason)

		switch compat.Compatibility {
		case match.TypeIdentical, match.TypeAssignable:
			diags.AddInfo(diagnostic.CodeAssign, message, typePair, source.Name)
		case match.TypeConvertible:
			diags.AddInfo(diagnostic.CodeConvert, message, typePair, source.Name)
		case match.TypeNeedsTransform:
			diags.AddWarning(diagnostic.CodeLossy, message+", failures store the zero value", typePair, source.Name)
		default:
			diags.AddError(diagnostic.CodeIncompatible, message+", skipped", typePair, source.Name)
		}
	}

	for _, member := range targets {
		if !matched[member.Name] {
			diags.AddInfo(diagnostic.CodeUnmatchedTarget, "keeps its current value", typePair, member.Name)
		}
	}

	return diags, nil
}

// suggest names the target member a missing source member most likely corresponds to.
func suggest(source *introspect.MemberDescriptor, targets []*introspect.MemberDescriptor) []string {
	fields := make([]match.Field, 0, len(targets))
	for _, member := range targets {
		fields = append(fields, match.Field{Name: member.Name, Type: member.Type})
	}

	candidates := match.RankCandidates(match.Field{Name: source.Name, Type: source.Type}, fields)
	if best := candidates.HighConfidence(match.DefaultMinScore, match.DefaultMinGap); best != nil {
		return []string{best.Target.Name}
	}

	return nil
}
