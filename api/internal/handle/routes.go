package handle

import "net/http"

// Routes registers every endpoint. staticDir is served under /static/ when set.
func (h *Handle) Routes(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/transcribe", h.Transcribe)
	mux.HandleFunc("/classify", h.Classify)
	mux.HandleFunc("/extract", h.Extract)
	mux.HandleFunc("/chat", h.Chat)
	if staticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}
	return mux
}
