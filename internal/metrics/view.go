package metrics

// Result labels for PostViewLoadsTotal and SidebarRefreshTotal
const (
	ResultSuccess    = "success"
	ResultFailure    = "failure"
	ResultUnchanged  = "unchanged"
	ResultSuperseded = "superseded"
)

// RecordPostViewLoad counts a post view load by result
func (m *Metrics) RecordPostViewLoad(result string) {
	m.safeExecute("RecordPostViewLoad", func() {
		m.PostViewLoadsTotal.WithLabelValues(result).Inc()
	})
}

// RecordCommentAdded records the outcome of a comment submission
func (m *Metrics) RecordCommentAdded(err error) {
	m.safeExecute("RecordCommentAdded", func() {
		if err != nil {
			m.CommentAddFailures.Inc()
			return
		}
		m.CommentsAddedTotal.Inc()
	})
}

// IncrementLikeToggles increments the like toggle counter
func (m *Metrics) IncrementLikeToggles() {
	m.safeExecute("IncrementLikeToggles", func() {
		m.LikeTogglesTotal.Inc()
	})
}

// IncrementSidebarToggles increments the sidebar toggle counter
func (m *Metrics) IncrementSidebarToggles() {
	m.safeExecute("IncrementSidebarToggles", func() {
		m.SidebarTogglesTotal.Inc()
	})
}

// RecordSidebarRefresh counts a sidebar refresh by result
func (m *Metrics) RecordSidebarRefresh(result string) {
	m.safeExecute("RecordSidebarRefresh", func() {
		m.SidebarRefreshTotal.WithLabelValues(result).Inc()
	})
}

// SetSidebarPostCount sets the sidebar post count gauge
func (m *Metrics) SetSidebarPostCount(count int) {
	m.safeExecute("SetSidebarPostCount", func() {
		m.SidebarPostCount.Set(float64(count))
	})
}

// RecordSessionStoreError counts a view-state store failure
func (m *Metrics) RecordSessionStoreError(operation string) {
	m.safeExecute("RecordSessionStoreError", func() {
		m.SessionStoreErrors.WithLabelValues(operation).Inc()
	})
}
