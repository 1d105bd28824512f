package events

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}
