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

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/mailpog/internal/models"
)

func TestDeliveryLogTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryLogTestSuite))
}

type DeliveryLogTestSuite struct {
	baseFileystemTestSuite

	deliveryLog *DeliveryLog
}

func (s *DeliveryLogTestSuite) SetupTest() {
	s.baseFileystemTestSuite.SetupTest()
	s.deliveryLog = NewDeliveryLog(s.fs, DeliveryLogOptions{Filename: "logs/log_envios.csv"})
}

func (s *DeliveryLogTestSuite) TestEnsureInitializedCreatesHeader() {
	s.Require().NoError(s.deliveryLog.EnsureInitialized())
	s.assertFileContent("logs/log_envios.csv", "Email,DataHora\n")
}

func (s *DeliveryLogTestSuite) TestEnsureInitializedKeepsExistingFile() {
	s.requireWrite("logs/log_envios.csv", "Email,DataHora\na@example.com,2023-01-02T03:04:05Z\n")

	s.Require().NoError(s.deliveryLog.EnsureInitialized())
	s.assertFileContent("logs/log_envios.csv", "Email,DataHora\na@example.com,2023-01-02T03:04:05Z\n")
}

func (s *DeliveryLogTestSuite) TestEnsureInitializedFillsEmptyFile() {
	s.requireWrite("logs/log_envios.csv", "")

	s.Require().NoError(s.deliveryLog.EnsureInitialized())
	s.assertFileContent("logs/log_envios.csv", "Email,DataHora\n")
}

func (s *DeliveryLogTestSuite) TestAppend() {
	s.Require().NoError(s.deliveryLog.EnsureInitialized())

	timestamp := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Require().NoError(s.deliveryLog.Append(models.MustParse("a@example.com"), timestamp))
	s.Require().NoError(s.deliveryLog.Append(models.MustParse("b@example.com"), timestamp.Add(time.Minute)))

	s.assertFileContent("logs/log_envios.csv",
		"Email,DataHora\n"+
			"a@example.com,2023-01-02T03:04:05Z\n"+
			"b@example.com,2023-01-02T03:05:05Z\n")
}

func (s *DeliveryLogTestSuite) TestRoundTrip() {
	var (
		zone      = time.FixedZone("BRT", -3*60*60)
		timestamp = time.Date(2023, 5, 6, 7, 8, 9, 0, zone)
	)

	s.Require().NoError(s.deliveryLog.EnsureInitialized())
	s.Require().NoError(s.deliveryLog.Append(models.MustParse("a@example.com"), timestamp))

	entries, err := s.deliveryLog.Entries()
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Assert().Equal("a@example.com", entries[0].Recipient)
	s.Assert().True(timestamp.Equal(entries[0].DeliveredAt))
}

func (s *DeliveryLogTestSuite) TestEntriesMissingFile() {
	entries, err := s.deliveryLog.Entries()
	s.Require().NoError(err)
	s.Assert().Empty(entries)
}

func (s *DeliveryLogTestSuite) TestEntriesMalformed() {
	s.requireWrite("logs/log_envios.csv", "Email,DataHora\na@example.com,yesterday\n")

	_, err := s.deliveryLog.Entries()
	s.Assert().ErrorIs(err, ErrMalformedDeliveryLog)
}

func (s *DeliveryLogTestSuite) TestEntriesZonelessTimestamps() {
	s.requireWrite("logs/log_envios.csv",
		"Email,DataHora\n"+
			"a@example.com,2024-05-01T12:34:56.123456\n"+
			"b@example.com,2024-05-01T12:35:46\n")

	entries, err := s.deliveryLog.Entries()
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Assert().Equal("a@example.com", entries[0].Recipient)
	s.Assert().True(time.Date(2024, 5, 1, 12, 34, 56, 123456000, time.Local).Equal(entries[0].DeliveredAt))
	s.Assert().Equal("b@example.com", entries[1].Recipient)
	s.Assert().True(time.Date(2024, 5, 1, 12, 35, 46, 0, time.Local).Equal(entries[1].DeliveredAt))
}
