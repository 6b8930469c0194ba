package port

import "accessibility-bot/internal/domain/entity"

// RuleEngine прогоняет все проверки; ошибки внутри проверок не выходят наружу
type RuleEngine interface {
	Evaluate(in entity.RuleInput) entity.RuleResult
}
