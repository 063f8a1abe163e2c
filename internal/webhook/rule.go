package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/itchyny/gojq"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/cfg"
)

// Event is the view of a webhook delivery that operator-defined rules see.
// The target fields are extracted from the payload envelope that every
// repository event shares, param templates can access all of them as
// {{.Event.Field}}.
type Event struct {
	Type          string
	DeliveryID    string
	Owner         string
	Repo          string
	PullRequestNr int
	Sender        string
	JSON          []byte
}

// eventEnvelope is the payload subset shared by repository events that rules
// can target.
type eventEnvelope struct {
	Repository struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
	Issue struct {
		Number int `json:"number"`
	} `json:"issue"`
	Sender struct {
		Login string `json:"login"`
	} `json:"sender"`
}

func newEvent(eventType, deliveryID string, payload []byte) *Event {
	var envelope eventEnvelope
	// interpretable deliveries always carry valid json, the envelope probe
	// only fails for fields that are absent anyway
	_ = json.Unmarshal(payload, &envelope)

	number := envelope.PullRequest.Number
	if number == 0 {
		number = envelope.Issue.Number
	}

	return &Event{
		Type:          eventType,
		DeliveryID:    deliveryID,
		Owner:         envelope.Repository.Owner.Login,
		Repo:          envelope.Repository.Name,
		PullRequestNr: number,
		Sender:        envelope.Sender.Login,
		JSON:          payload,
	}
}

// Rule enqueues one or more actions for deliveries whose JSON representation
// matches a jq filter query.
type Rule struct {
	name        string
	filterQuery *gojq.Query
	actions     []*ruleAction
}

type ruleAction struct {
	kind     actionqueue.Kind
	priority actionqueue.Priority
	params   map[string]*template.Template
}

func NewRule(name, jqQuery string, actions []*ruleAction) (*Rule, error) {
	query, err := gojq.Parse(jqQuery)
	if err != nil {
		return nil, fmt.Errorf("parsing filter query failed: %w", err)
	}

	return &Rule{
		name:        name,
		filterQuery: query,
		actions:     actions,
	}, nil
}

func (r *Rule) Name() string { return r.name }

// Match returns true if the filter query of the rule evaluates to true for
// the JSON representation of the delivery.
func (r *Rule) Match(ctx context.Context, event *Event) (bool, error) {
	if len(event.JSON) == 0 {
		return false, errors.New("json field of event is empty")
	}

	var evUn any
	if err := json.Unmarshal(event.JSON, &evUn); err != nil {
		return false, fmt.Errorf("unmarshaling json failed: %w", err)
	}

	result, errs := goJQIterToSlice(r.filterQuery.RunWithContext(ctx, evUn))
	if len(errs) != 0 {
		return false, fmt.Errorf("json query returned errors, query: %q, errors: %s", r.filterQuery.String(), errString(errs))
	}

	if len(result) != 1 {
		return false, fmt.Errorf("json query returned %d results, expected 1, query: %q", len(result), r.filterQuery.String())
	}

	val, isBool := result[0].(bool)
	if !isBool {
		return false, fmt.Errorf(
			"json query returned non-bool result: %+v (%T), query: %q",
			result[0], result[0], r.filterQuery.String(),
		)
	}

	return val, nil
}

// EnqueueRequests evaluates the rule for the delivery and returns the
// enqueue requests of its actions, with all param templates rendered.
// It returns an empty slice when the rule does not match.
func (r *Rule) EnqueueRequests(ctx context.Context, event *Event) ([]*actionqueue.EnqueueRequest, error) {
	match, err := r.Match(ctx, event)
	if err != nil {
		return nil, err
	}

	if !match {
		return nil, nil
	}

	result := make([]*actionqueue.EnqueueRequest, 0, len(r.actions))

	for _, action := range r.actions {
		params, err := renderParams(action.params, event)
		if err != nil {
			return nil, fmt.Errorf("rendering params of action %q failed: %w", action.kind, err)
		}

		result = append(result, &actionqueue.EnqueueRequest{
			Kind:        action.kind,
			Owner:       event.Owner,
			Repo:        event.Repo,
			Number:      event.PullRequestNr,
			Params:      params,
			Priority:    action.priority,
			TriggeredBy: "rule:" + r.name,
		})
	}

	return result, nil
}

func renderParams(params map[string]*template.Template, event *Event) (map[string]any, error) {
	if len(params) == 0 {
		return nil, nil
	}

	templateContext := struct{ Event *Event }{Event: event}
	result := make(map[string]any, len(params))

	for key, templ := range params {
		var out bytes.Buffer

		if err := templ.Execute(&out, &templateContext); err != nil {
			return nil, fmt.Errorf("param %q: %w", key, err)
		}

		result[key] = out.String()
	}

	return result, nil
}

func goJQIterToSlice(iter gojq.Iter) ([]any, []error) {
	var result []any
	var errs []error

	for {
		res, ok := iter.Next()
		if !ok {
			return result, errs
		}

		if err, isErr := res.(error); isErr {
			errs = append(errs, err)
			continue
		}

		result = append(result, res)
	}
}

func errString(errs []error) string {
	var result strings.Builder

	for i, err := range errs {
		if i > 0 {
			result.WriteString("; ")
		}

		result.WriteString(fmt.Sprintf("error %d: %s", i, err))
	}

	return result.String()
}

// RulesFromCfg instantiates the operator-defined rules of a configuration.
func RulesFromCfg(config *cfg.Config) ([]*Rule, error) {
	result := make([]*Rule, 0, len(config.Rules))

	for _, cfgRule := range config.Rules {
		actions := make([]*ruleAction, 0, len(cfgRule.Actions))

		for _, cfgAction := range cfgRule.Actions {
			kind, err := actionqueue.KindFromString(cfgAction.Kind)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", cfgRule.Name, err)
			}

			var priority actionqueue.Priority
			if cfgAction.Priority != "" {
				priority, err = actionqueue.PriorityFromString(cfgAction.Priority)
				if err != nil {
					return nil, fmt.Errorf("rule %q: action %q: %w", cfgRule.Name, cfgAction.Kind, err)
				}
			}

			params := make(map[string]*template.Template, len(cfgAction.Params))
			for key, val := range cfgAction.Params {
				templ, err := template.New(key).Parse(val)
				if err != nil {
					return nil, fmt.Errorf(
						"rule %q: action %q: parsing template of param %q failed: %w",
						cfgRule.Name, cfgAction.Kind, key, err,
					)
				}

				params[key] = templ
			}

			actions = append(actions, &ruleAction{
				kind:     kind,
				priority: priority,
				params:   params,
			})
		}

		rule, err := NewRule(cfgRule.Name, cfgRule.FilterQuery, actions)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", cfgRule.Name, err)
		}

		result = append(result, rule)
	}

	return result, nil
}
