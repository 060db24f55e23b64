package service

import (
	"github.com/betulabla/foundation/internal/testutil"
)

// newTestParams wires ServiceParams onto the in-memory stores of the suite
func newTestParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetAuthProvider(),
		s.GetS3(),
		stores.AuthRepo,
		stores.UserRepo,
		stores.OrphanRepo,
		stores.BoreholeRepo,
		stores.ReportRepo,
	)
}
