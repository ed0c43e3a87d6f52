package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/theapemachine/mcp-server-deepl/pkg/deepl"
)

// MockProvider mocks the DeepL client for testing
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Translate(ctx context.Context, req deepl.TranslateRequest) (deepl.Translation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(deepl.Translation), args.Error(1)
}

func (m *MockProvider) ListLanguages(ctx context.Context, direction deepl.Direction) ([]deepl.Language, error) {
	args := m.Called(ctx, direction)
	langs, _ := args.Get(0).([]deepl.Language)
	return langs, args.Error(1)
}

func (m *MockProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Usage(ctx context.Context) (deepl.Usage, error) {
	args := m.Called(ctx)
	return args.Get(0).(deepl.Usage), args.Error(1)
}

func (m *MockProvider) assertNoCalls(t *testing.T) {
	m.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "ListLanguages", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "DetectLanguage", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "Usage", mock.Anything)
}

// Helper function for creating mock request
func newMockRequest(name string, args map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Name = name
	request.Params.Arguments = args

	return request
}

func resultText(result *mcp.CallToolResult) string {
	text, _ := result.Content[0].(mcp.TextContent)
	return text.Text
}

func int64p(v int64) *int64 {
	return &v
}

func TestDispatchValidation(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		provider := &MockProvider{}
		dispatcher := NewDispatcher(provider, nil)
		ctx := context.Background()

		Convey("Missing required parameters fail before any provider call", func() {
			for _, def := range Definitions() {
				for _, param := range def.Params {
					if !param.Required {
						continue
					}

					args := map[string]any{}
					for _, other := range def.Params {
						if other.Required && other.Name != param.Name {
							args[other.Name] = "DE"
						}
					}

					_, err := dispatcher.Dispatch(ctx, Call{Name: def.Name, Arguments: args})
					So(err, ShouldNotBeNil)
					So(err.Category, ShouldEqual, CategoryInvalidArguments)
					So(err.Field, ShouldEqual, param.Name)
					So(err.Retryable(), ShouldBeFalse)
				}
			}

			provider.assertNoCalls(t)
		})

		Convey("An unrecognized formality never reaches the provider", func() {
			_, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text": "Hello", "target_lang": "DE", "formality": "extremely",
			}})

			So(err.Category, ShouldEqual, CategoryInvalidArguments)
			So(err.Field, ShouldEqual, "formality")
			provider.assertNoCalls(t)
		})

		Convey("Empty text for detect_language never reaches the provider", func() {
			_, err := dispatcher.Dispatch(ctx, Call{Name: "detect_language", Arguments: map[string]any{"text": ""}})

			So(err.Category, ShouldEqual, CategoryInvalidArguments)
			So(err.Field, ShouldEqual, "text")
			provider.assertNoCalls(t)
		})

		Convey("A base code target is ambiguous and lists the variants", func() {
			_, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text": "Hallo", "target_lang": "English",
			}})

			So(err.Category, ShouldEqual, CategoryAmbiguousLanguage)
			So(err.Field, ShouldEqual, "target_lang")
			So(err.Candidates, ShouldResemble, []string{"EN-GB", "EN-US"})
			So(err.Retryable(), ShouldBeFalse)
			provider.assertNoCalls(t)
		})

		Convey("An unknown language is an invalid argument", func() {
			_, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text": "Hallo", "target_lang": "DE", "source_lang": "Klingon",
			}})

			So(err.Category, ShouldEqual, CategoryInvalidArguments)
			So(err.Field, ShouldEqual, "source_lang")
			provider.assertNoCalls(t)
		})

		Convey("An unknown tool is rejected", func() {
			_, err := dispatcher.Dispatch(ctx, Call{Name: "summarize"})

			So(err.Category, ShouldEqual, CategoryUnknownTool)
			So(err.Message, ShouldContainSubstring, "summarize")
			So(err.Retryable(), ShouldBeFalse)
			provider.assertNoCalls(t)
		})
	})
}

func TestDispatchTranslate(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		provider := &MockProvider{}
		dispatcher := NewDispatcher(provider, nil)
		ctx := context.Background()

		Convey("A language name target is resolved before dispatch", func() {
			provider.On("Translate", mock.Anything, mock.MatchedBy(func(req deepl.TranslateRequest) bool {
				return req.Text == "Hello" &&
					req.TargetLang == "JA" &&
					req.SourceLang == nil &&
					req.Formality == nil &&
					req.PreserveFormatting
			})).Return(deepl.Translation{Text: "こんにちは", DetectedSourceLang: "EN"}, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text": "Hello", "target_lang": "Japanese",
			}})

			So(err, ShouldBeNil)
			So(payload, ShouldResemble, TranslatePayload{
				Text:               "こんにちは",
				DetectedSourceLang: "EN",
				TargetLang:         "JA",
				PreserveFormatting: true,
			})
			So(provider.AssertExpectations(t), ShouldBeTrue)
		})

		Convey("Optional arguments are resolved and passed through", func() {
			provider.On("Translate", mock.Anything, mock.MatchedBy(func(req deepl.TranslateRequest) bool {
				return req.TargetLang == "EN-GB" &&
					req.SourceLang != nil && *req.SourceLang == "DE" &&
					req.Formality != nil && *req.Formality == deepl.FormalityLess &&
					!req.PreserveFormatting
			})).Return(deepl.Translation{Text: "Hi", DetectedSourceLang: "DE"}, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text":                "Hallo",
				"target_lang":         "british english",
				"source_lang":         "german",
				"formality":           "less",
				"preserve_formatting": false,
			}})

			So(err, ShouldBeNil)
			So(payload.(TranslatePayload).SourceLang, ShouldEqual, "DE")
			So(payload.(TranslatePayload).Formality, ShouldEqual, "less")
			So(provider.AssertExpectations(t), ShouldBeTrue)
		})

		Convey("The default formality is left to the provider", func() {
			provider.On("Translate", mock.Anything, mock.MatchedBy(func(req deepl.TranslateRequest) bool {
				return req.Formality == nil
			})).Return(deepl.Translation{Text: "Hallo"}, nil).Once()

			_, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text": "Hello", "target_lang": "DE", "formality": "default",
			}})

			So(err, ShouldBeNil)
			So(provider.AssertExpectations(t), ShouldBeTrue)
		})

		Convey("Errors that are not provider errors are unknown", func() {
			provider.On("Translate", mock.Anything, mock.Anything).
				Return(deepl.Translation{}, errors.New("boom")).Once()

			_, err := dispatcher.Dispatch(ctx, Call{Name: "translate", Arguments: map[string]any{
				"text": "Hello", "target_lang": "DE",
			}})

			So(err.Category, ShouldEqual, CategoryUnknown)
			So(err.Retryable(), ShouldBeFalse)
		})
	})
}

func TestDispatchLanguages(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		provider := &MockProvider{}
		dispatcher := NewDispatcher(provider, nil)
		ctx := context.Background()

		source := []deepl.Language{{Code: "DE", Name: "German"}, {Code: "EN", Name: "English"}}
		target := []deepl.Language{{Code: "DE", Name: "German", SupportsFormality: true}}

		Convey("The target list is the default", func() {
			provider.On("ListLanguages", mock.Anything, deepl.DirectionTarget).Return(target, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "get_supported_languages"})

			So(err, ShouldBeNil)
			out := payload.(LanguagesPayload)
			So(out.Direction, ShouldEqual, "target")
			So(out.Source, ShouldBeNil)
			So(len(out.Target), ShouldEqual, 1)
			So(*out.Target[0].SupportsFormality, ShouldBeTrue)
			So(provider.AssertExpectations(t), ShouldBeTrue)
		})

		Convey("The source list keeps provider order", func() {
			provider.On("ListLanguages", mock.Anything, deepl.DirectionSource).Return(source, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "get_supported_languages", Arguments: map[string]any{
				"direction": "source",
			}})

			So(err, ShouldBeNil)
			out := payload.(LanguagesPayload)
			So(out.Source[0].Code, ShouldEqual, "DE")
			So(out.Source[1].Code, ShouldEqual, "EN")
			So(out.Source[0].SupportsFormality, ShouldBeNil)
		})

		Convey("Both lists are fetched for direction both", func() {
			provider.On("ListLanguages", mock.Anything, deepl.DirectionSource).Return(source, nil).Once()
			provider.On("ListLanguages", mock.Anything, deepl.DirectionTarget).Return(target, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "get_supported_languages", Arguments: map[string]any{
				"direction": "BOTH",
			}})

			So(err, ShouldBeNil)
			out := payload.(LanguagesPayload)
			So(out.Direction, ShouldEqual, "both")
			So(len(out.Source), ShouldEqual, 2)
			So(len(out.Target), ShouldEqual, 1)
			So(provider.AssertExpectations(t), ShouldBeTrue)
		})

		Convey("An unknown direction is rejected", func() {
			_, err := dispatcher.Dispatch(ctx, Call{Name: "get_supported_languages", Arguments: map[string]any{
				"direction": "sideways",
			}})

			So(err.Category, ShouldEqual, CategoryInvalidArguments)
			provider.assertNoCalls(t)
		})
	})
}

func TestDispatchUsage(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		provider := &MockProvider{}
		dispatcher := NewDispatcher(provider, nil)
		ctx := context.Background()

		keys := func(payload any) []string {
			body, err := json.Marshal(payload)
			So(err, ShouldBeNil)

			var fields map[string]any
			So(json.Unmarshal(body, &fields), ShouldBeNil)

			out := make([]string, 0, len(fields))
			for key := range fields {
				out = append(out, key)
			}
			sort.Strings(out)

			return out
		}

		Convey("Finite and unlimited plans have the same shape", func() {
			provider.On("Usage", mock.Anything).Return(deepl.Usage{
				CharacterCount: 250000,
				CharacterLimit: int64p(500000),
			}, nil).Once()
			provider.On("Usage", mock.Anything).Return(deepl.Usage{CharacterCount: 42}, nil).Once()

			finite, err := dispatcher.Dispatch(ctx, Call{Name: "get_usage"})
			So(err, ShouldBeNil)

			unlimited, err := dispatcher.Dispatch(ctx, Call{Name: "get_usage"})
			So(err, ShouldBeNil)

			So(keys(finite), ShouldResemble, keys(unlimited))

			f := finite.(UsagePayload)
			So(f.Unlimited, ShouldBeFalse)
			So(*f.CharacterRemaining, ShouldEqual, int64(250000))
			So(*f.UsagePercent, ShouldEqual, 50.0)

			u := unlimited.(UsagePayload)
			So(u.Unlimited, ShouldBeTrue)
			So(u.CharacterLimit, ShouldBeNil)
			So(u.CharacterRemaining, ShouldBeNil)
			So(u.UsagePercent, ShouldBeNil)
		})

		Convey("Usage over the limit reports nothing remaining", func() {
			provider.On("Usage", mock.Anything).Return(deepl.Usage{
				CharacterCount: 600,
				CharacterLimit: int64p(500),
			}, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "get_usage"})
			So(err, ShouldBeNil)
			So(*payload.(UsagePayload).CharacterRemaining, ShouldEqual, int64(0))
		})
	})
}

func TestDispatchDetect(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		provider := &MockProvider{}
		dispatcher := NewDispatcher(provider, nil)
		ctx := context.Background()

		Convey("The detected code is named from the live list", func() {
			provider.On("DetectLanguage", mock.Anything, "Bonjour tout le monde").Return("FR", nil).Once()
			provider.On("ListLanguages", mock.Anything, deepl.DirectionSource).
				Return([]deepl.Language{{Code: "FR", Name: "French"}}, nil).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "detect_language", Arguments: map[string]any{
				"text": "Bonjour tout le monde",
			}})

			So(err, ShouldBeNil)
			So(payload, ShouldResemble, DetectPayload{Language: "FR", Name: "French", Excerpt: "Bonjour tout le monde"})
		})

		Convey("A failed name lookup falls back to the catalog", func() {
			provider.On("DetectLanguage", mock.Anything, mock.Anything).Return("JA", nil).Once()
			provider.On("ListLanguages", mock.Anything, deepl.DirectionSource).
				Return(nil, errors.New("down")).Once()

			payload, err := dispatcher.Dispatch(ctx, Call{Name: "detect_language", Arguments: map[string]any{
				"text": "こんにちは",
			}})

			So(err, ShouldBeNil)
			So(payload.(DetectPayload).Name, ShouldEqual, "Japanese")
		})

		Convey("Long texts are excerpted", func() {
			So(excerpt("short", 10), ShouldEqual, "short")
			So(excerpt("日本語のテキスト", 3), ShouldEqual, "日本語...")
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given a dispatcher behind the MCP handler", t, func() {
		provider := &MockProvider{}
		dispatcher := NewDispatcher(provider, nil)
		ctx := context.Background()

		Convey("Success is returned as a JSON text result", func() {
			provider.On("Usage", mock.Anything).Return(deepl.Usage{CharacterCount: 7}, nil).Once()

			result, err := dispatcher.Handler(ctx, newMockRequest("get_usage", nil))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)

			var payload map[string]any
			So(json.Unmarshal([]byte(resultText(result)), &payload), ShouldBeNil)
			So(payload["character_count"], ShouldEqual, 7.0)
			So(payload["character_limit"], ShouldBeNil)
		})

		Convey("Failures are returned as error results with a category", func() {
			result, err := dispatcher.Handler(ctx, newMockRequest("translate", map[string]any{"text": "hi"}))

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)

			var body struct {
				Error struct {
					Category  string `json:"category"`
					Field     string `json:"field"`
					Retryable bool   `json:"retryable"`
				} `json:"error"`
			}
			So(json.Unmarshal([]byte(resultText(result)), &body), ShouldBeNil)
			So(body.Error.Category, ShouldEqual, "invalid_arguments")
			So(body.Error.Field, ShouldEqual, "target_lang")
			So(body.Error.Retryable, ShouldBeFalse)
			provider.assertNoCalls(t)
		})
	})
}
