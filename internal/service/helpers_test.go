package service_test

// recordingPublisher 记录所有发布调用，供断言提交后才发布的顺序。
type recordingPublisher struct {
	published []publishedEvent
}

type publishedEvent struct {
	Target  string
	Event   string
	Payload interface{}
}

func (p *recordingPublisher) Publish(target, event string, payload interface{}) {
	p.published = append(p.published, publishedEvent{Target: target, Event: event, Payload: payload})
}
