package status

import "fmt"

// Fail sets the result to failed state with a detail message.
func (r *Result) Fail(detail string, err error) Result {
	r.State = StateFail
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// FailErr sets the result to failed state, using the error text as the detail.
func (r *Result) FailErr(err error) Result {
	return r.Fail(err.Error(), err)
}

// Pass sets the result to OK state.
func (r *Result) Pass() Result {
	r.State = StateOK
	return *r
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...interface{}) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}
