package http

import "net/http"

func (a *API) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessionSvc.Start(r.Context())
	if err != nil {
		a.log.Error(r.Context(), "session.start_failed", err)
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}
