// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/mailpog/internal/models"
)

func TestAttemptDaoTestSuite(t *testing.T) {
	suite.Run(t, new(AttemptDaoTestSuite))
}

type AttemptDaoTestSuite struct {
	baseDatabaseTestSuite

	attemptDao AttemptDao
}

func (s *AttemptDaoTestSuite) SetupTest() {
	s.baseDatabaseTestSuite.SetupTest()
	s.attemptDao = NewAttemptDao()
}

func (s *AttemptDaoTestSuite) TestInsert() {
	attempt := models.AttemptEntity{
		Recipient:   s.mustParseAddress("a@example.com"),
		Account:     s.mustParseAddress("sender@example.org"),
		AttemptedAt: 1234,
		Outcome:     models.OutcomeFailed,
	}
	attempt.Reason.String = "550 mailbox unavailable"
	attempt.Reason.Valid = true

	s.Require().NoError(s.attemptDao.Insert(s.ctx, s.conn, &attempt))
	s.Assert().Equal(int64(1), attempt.ID)

	s.assertQuery(`select * from "attempts" ;`,
		[]string{"1", "a@example.com", "sender@example.org", "1234", "2", "550 mailbox unavailable"},
	)
}

func (s *AttemptDaoTestSuite) TestFindDelivered() {
	s.requireExec(`
		insert into "attempts" ( "recipient", "account", "attempted_at", "outcome" )
		values
			( 'b@example.com' , 'sender@example.org' , 10 , 1 ) ,
			( 'c@example.com' , 'sender@example.org' , 11 , 2 ) ,
			( 'a@example.com' , 'sender@example.org' , 12 , 1 ) ,
			( 'b@example.com' , 'other@example.org'  , 13 , 1 ) ;
	`)

	delivered, err := s.attemptDao.FindDelivered(s.ctx, s.conn)
	s.Require().NoError(err)
	s.Assert().Equal([]models.Address{
		s.mustParseAddress("b@example.com"),
		s.mustParseAddress("a@example.com"),
	}, delivered)
}

func (s *AttemptDaoTestSuite) TestFindDeliveredEmpty() {
	delivered, err := s.attemptDao.FindDelivered(s.ctx, s.conn)
	s.Require().NoError(err)
	s.Assert().Empty(delivered)
}

func (s *AttemptDaoTestSuite) TestCountDeliveredSince() {
	s.requireExec(`
		insert into "attempts" ( "recipient", "account", "attempted_at", "outcome" )
		values
			( 'a@example.com' , 'sender@example.org' , 100 , 1 ) ,
			( 'b@example.com' , 'sender@example.org' , 200 , 1 ) ,
			( 'c@example.com' , 'sender@example.org' , 300 , 2 ) ,
			( 'd@example.com' , 'sender@example.org' , 400 , 1 ) ,
			( 'e@example.com' , 'other@example.org'  , 500 , 1 ) ;
	`)

	count, err := s.attemptDao.CountDeliveredSince(s.ctx, s.conn,
		s.mustParseAddress("sender@example.org"), time.Unix(200, 0))
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	count, err = s.attemptDao.CountDeliveredSince(s.ctx, s.conn,
		s.mustParseAddress("nobody@example.org"), time.Unix(0, 0))
	s.Require().NoError(err)
	s.Assert().Zero(count)
}
