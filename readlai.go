// Package readlai provides the translation and dictionary backend of an
// AI-assisted e-reader.
//
// Readlai translates batches of document sentences through a chat-style LLM
// endpoint, caching every result under a content-addressed fingerprint so a
// sentence is only ever sent to the model once per model and target
// language. Model replies are scraped for embedded JSON and decoded
// tolerantly; a reply that still cannot be decoded is re-requested once with
// a stricter prompt.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/readlai"
//	    "github.com/ZaguanLabs/readlai/cache"
//	    "github.com/ZaguanLabs/readlai/keystore"
//	    "github.com/ZaguanLabs/readlai/provider"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        Credentials: keystore.NewFile(keyPath),
//	    })
//
//	    t := readlai.NewTranslator(p, cache.NewFileStore(configDir))
//
//	    results, err := t.Translate(context.Background(), readlai.TranslateRequest{
//	        Model:     "openai/gpt-4o-mini",
//	        Target:    readlai.TargetLanguage{Label: "Spanish", Code: "es"},
//	        Sentences: []readlai.Sentence{{ID: "doc42:s1", Text: "Hello World"}},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(results[0].Text) // Hola Mundo
//	}
package readlai
