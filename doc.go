// Package quotelai translates the quote shown on a new-tab page through an
// OpenAI-compatible chat-completion API.
//
// Translations stream in as fragments and are kept in a bounded cache, so asking
// for the same quote again replays the cached text through the same stream
// interface without a network call.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/quotelai"
//	    "github.com/ZaguanLabs/quotelai/cache"
//	    "github.com/ZaguanLabs/quotelai/provider"
//	    "github.com/ZaguanLabs/quotelai/settings"
//	    "github.com/ZaguanLabs/quotelai/store"
//	)
//
//	func main() {
//	    kv, _ := store.NewFileStore(os.ExpandEnv("$HOME/.config/quotelai"))
//
//	    t := quotelai.NewTranslator(settings.NewStore(kv), provider.NewOpenAIProvider(provider.OpenAIConfig{}),
//	        quotelai.WithCache(cache.NewStoreCache(kv, cache.MaxEntries)),
//	    )
//
//	    text, ok := t.Translate(context.Background(), quotelai.Request{
//	        Text:       "Stay hungry, stay foolish.",
//	        TargetLang: "fr",
//	    }, func(fragment string, done bool) {
//	        fmt.Print(fragment)
//	    })
//	    if !ok {
//	        return // translation unavailable; show the original
//	    }
//	    _ = text
//	}
package quotelai
