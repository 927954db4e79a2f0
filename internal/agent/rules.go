package agent

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gitter-badger/zoc/internal/domain"
)

// ActionFunc строит команду для сработавшего правила. nil - правило
// сработало, но команды не нашлось; тогда проверяется следующее.
type ActionFunc func(env RuleEnv) domain.Command

// Rule - пара "условие -> действие". Условие - выражение expr над RuleEnv.
type Rule struct {
	Name         string // human-readable identifier
	Priority     int    // higher = evaluated first
	ConditionSrc string
	program      *vm.Program
	Action       ActionFunc
}

// DefaultRules - порядок решений ИИ: стрелять, если есть по кому; иначе
// сближаться с ближайшим противником; иначе закончить ход.
func DefaultRules() []*Rule {
	return []*Rule{
		{
			Name:         "attack",
			Priority:     300,
			ConditionSrc: `CanAttack()`,
			Action:       func(env RuleEnv) domain.Command { return env.plan.attack() },
		},
		{
			Name:         "advance",
			Priority:     200,
			ConditionSrc: `EnemyUnits > 0 && CanAdvance()`,
			Action:       func(env RuleEnv) domain.Command { return env.plan.advance() },
		},
		{
			Name:         "end-turn",
			Priority:     0,
			ConditionSrc: `true`,
			Action:       func(RuleEnv) domain.Command { return domain.EndTurnCommand{} },
		},
	}
}

// compileRules компилирует условия в байткод и сортирует по приоритету.
func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("rule %q has no action", r.Name)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
