package logfields

import "go.uber.org/zap"

func ActionID(val string) zap.Field {
	return zap.String("action.id", val)
}

func ActionKind(val string) zap.Field {
	return zap.String("action.kind", val)
}

func ActionStatus(val string) zap.Field {
	return zap.String("action.status", val)
}

func Priority(val int) zap.Field {
	return zap.Int("action.priority", val)
}

func Attempt(val int) zap.Field {
	return zap.Int("action.attempt", val)
}

func TriggeredBy(val string) zap.Field {
	return zap.String("action.triggered_by", val)
}

func Operation(val string) zap.Field {
	return zap.String("operation", val)
}
