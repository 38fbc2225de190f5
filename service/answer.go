package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/phamtrung99/ragdex/types"
)

// StatusError is the status reported when the generative call failed.
const StatusError = "error"

// DefaultPersona opens the relevance-check prompt.
const DefaultPersona = "You are a college professor with a phd in linguistics and physics."

// AnswerService builds the model prompts, runs the generative call and turns
// the model's free-form reply into a displayable answer.
type AnswerService struct {
	ai      AIService
	persona string
}

func NewAnswerService(ai AIService, persona string) *AnswerService {
	if persona == "" {
		persona = DefaultPersona
	}
	return &AnswerService{ai: ai, persona: persona}
}

// RelevancePrompt asks for a strict YES/NO verdict on whether one chunk
// supports answering the question.
func (s *AnswerService) RelevancePrompt(question, text string) string {
	return fmt.Sprintf(`%s You have been given the following task:
Based on the following question:
QUESTION:
%s

Does the TEXT below support answering the question above? Answer YES or NO.

CONSIDERATIONS:
1. No hallucinations allowed. Stick with completing the task given the provided context.
2. Only use the text to search for answers.
3. The output must be valid JSON.
4. Do not escape any of the characters.
5. Enclose every key and value in double quotes.

OUTPUT FORMAT:
{"ANSWER": "YES" or "NO"}

TEXT:
%s`, s.persona, question, text)
}

// ConclusionPrompt asks the model to summarize an answer out of the
// formatted candidate list and name the candidates it used.
func (s *AnswerService) ConclusionPrompt(question string, candidates []string) string {
	return fmt.Sprintf(`Review the list of potential answers to the following question and see if an answer
can be found in the list. If answers are found, summarize in no more than 5 sentences.
QUESTION:
%s
POTENTIAL ANSWERS:
%s

CONSIDERATIONS:
1. No hallucinations allowed. Stick with completing the task given the provided context.
2. Only use the list of texts to search for answers.
3. The output must be valid JSON.
4. Do not provide answers that were not originally mentioned in the potential answers.
5. List the texts that you used to come to the answer.
6. If the question or task is not clear, state that in the ANSWER.
7. Provide concise answers whenever possible.
8. Remove any duplicate answers.
9. Replace any quotation mark inside values with the * symbol.
10. Only return one JSON object.
11. Enclose every key and value in double quotes.

OUTPUT FORMAT:
{"ANSWER": "<insert summary here>", "JUSTIFICATION": ["<candidate strings used>", ...]}`,
		question, strings.Join(candidates, "\n"))
}

// FormatCandidate renders one retrieval hit in the "{page}-{score}-{id}-{text}"
// shape the conclusion prompt and justification entries share.
func FormatCandidate(r types.ResultRecord) string {
	return fmt.Sprintf("%s-%v-%s-%s", r.PageNumber, r.Score, r.ID, r.Text)
}

// QueryModel runs one generative call. Failures never reach the caller as an
// error: the returned status is StatusError and the text empty.
func (s *AnswerService) QueryModel(ctx context.Context, prompt string) (string, string) {
	text, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		log.Error("unable to query model", "err", err)
		return "", StatusError
	}
	return text, ""
}

// ParseModelOutput strips newline noise and extracts the substring between
// the first '{' and the last '}'. This is a heuristic extraction, not a
// validating parse; text without a brace pair yields an empty string.
func ParseModelOutput(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return cleaned[start : end+1]
}

// ModelAnswer is the validated shape of the model's structured reply.
type ModelAnswer struct {
	Answer        string
	Justification []string
}

// DecodeAnswer decodes an extracted block, treating it as untrusted. ANSWER
// may be a string or a list (whose first element is used as a degenerate
// fallback); JUSTIFICATION must be a list of strings. Absent fields default
// to empty instead of failing; anything else wraps types.ErrParse.
func DecodeAnswer(block string) (*ModelAnswer, error) {
	var payload struct {
		Answer        json.RawMessage `json:"ANSWER"`
		Justification json.RawMessage `json:"JUSTIFICATION"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrParse, err)
	}

	answer := &ModelAnswer{}
	if len(payload.Answer) > 0 {
		var text string
		if err := json.Unmarshal(payload.Answer, &text); err == nil {
			answer.Answer = text
		} else {
			var list []string
			if err := json.Unmarshal(payload.Answer, &list); err != nil {
				return nil, fmt.Errorf("%w: ANSWER is neither string nor string list", types.ErrParse)
			}
			if len(list) > 0 {
				answer.Answer = list[0]
			}
		}
	}
	if len(payload.Justification) > 0 {
		if err := json.Unmarshal(payload.Justification, &answer.Justification); err != nil {
			return nil, fmt.Errorf("%w: JUSTIFICATION is not a string list", types.ErrParse)
		}
	}
	return answer, nil
}

// CheckRelevance asks the model for a YES/NO verdict on one chunk.
func (s *AnswerService) CheckRelevance(ctx context.Context, question, text string) (bool, error) {
	raw, status := s.QueryModel(ctx, s.RelevancePrompt(question, text))
	if status == StatusError {
		return false, types.ErrModel
	}
	parsed, err := DecodeAnswer(ParseModelOutput(raw))
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(parsed.Answer), "YES"), nil
}

// Answer runs the conclusion task over retrieved records and resolves the
// justification entries back to their original chunk texts. Every failure
// mode degrades to a visible message in the response; this method never
// returns an error or panics on malformed model output.
func (s *AnswerService) Answer(ctx context.Context, question string, results []types.ResultRecord) *types.AnswerResponse {
	if len(results) == 0 {
		return &types.AnswerResponse{Error: "no candidate answers retrieved"}
	}

	candidates := make([]string, 0, len(results))
	textByID := make(map[string]string, len(results))
	for _, r := range results {
		candidates = append(candidates, FormatCandidate(r))
		textByID[r.ID] = r.Text
	}

	raw, status := s.QueryModel(ctx, s.ConclusionPrompt(question, candidates))
	if status == StatusError {
		return &types.AnswerResponse{Error: "unable to query the language model"}
	}
	block := ParseModelOutput(raw)
	if block == "" {
		return &types.AnswerResponse{Error: "model reply held no structured answer"}
	}
	parsed, err := DecodeAnswer(block)
	if err != nil {
		return &types.AnswerResponse{Error: fmt.Sprintf("unable to parse model reply: %v", err)}
	}

	resp := &types.AnswerResponse{Summary: parsed.Answer}
	var problems []string
	for _, entry := range parsed.Justification {
		rec, err := resolveJustification(entry, textByID)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		resp.Supporting = append(resp.Supporting, rec)
	}
	if len(problems) > 0 {
		resp.Error = strings.Join(problems, "; ")
	}
	return resp
}

// resolveJustification parses one "{page}-{score}-{id}" entry and looks up
// the full chunk text by ID. The ID is the third dash field; anything after
// it (the model sometimes echoes the chunk text) is ignored.
func resolveJustification(entry string, textByID map[string]string) (types.SupportingRecord, error) {
	parts := strings.SplitN(entry, "-", 4)
	if len(parts) < 3 {
		return types.SupportingRecord{}, fmt.Errorf("malformed justification entry %q", entry)
	}
	score, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return types.SupportingRecord{}, fmt.Errorf("bad score in justification entry %q", entry)
	}
	id := parts[2]
	text, ok := textByID[id]
	if !ok {
		return types.SupportingRecord{}, fmt.Errorf("justification references unknown chunk %q", id)
	}
	return types.SupportingRecord{
		ID:    id,
		Page:  parts[0],
		Score: score,
		Text:  text,
	}, nil
}
