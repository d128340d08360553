package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tatianab/aetheria/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "no saved game",
			expected: "NOT_FOUND: no saved game",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "name is required",
			expected: "INVALID_ARGUMENT: name is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("no saved game").WithMeta("key", "slot")
	wrapped := errors.Wrap(base, "failed to resume")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("slot", wrapped.Meta["key"])
	s.True(errors.IsNotFound(wrapped))
	s.True(errors.Is(wrapped, errors.NotFound("")))
	s.Equal("NOT_FOUND: failed to resume: NOT_FOUND: no saved game", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	wrapped := errors.Wrapf(fmt.Errorf("disk full"), "failed to write %s", "save")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to write save", errors.GetMessage(wrapped))
	s.Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	wrapped := errors.WrapWithCode(fmt.Errorf("connection refused"), errors.CodeUnavailable, "model unreachable")

	s.True(errors.IsUnavailable(wrapped))
	s.False(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(fmt.Errorf("ctx: %w", errors.FailedPrecondition("busy"))))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}
