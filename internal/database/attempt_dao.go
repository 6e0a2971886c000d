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
	"context"
	"time"

	"github.com/lukasdietrich/mailpog/internal/models"
)

type AttemptDao interface {
	// Insert records a new attempt.
	Insert(context.Context, Queryer, *models.AttemptEntity) error
	// FindDelivered returns every recipient with at least one delivered attempt, in the order
	// of their first delivery.
	FindDelivered(context.Context, Queryer) ([]models.Address, error)
	// CountDeliveredSince counts the deliveries of an account at or after a point in time.
	CountDeliveredSince(context.Context, Queryer, models.Address, time.Time) (int, error)
}

type attemptDao struct{}

func NewAttemptDao() AttemptDao {
	return attemptDao{}
}

func (attemptDao) Insert(ctx context.Context, q Queryer, attempt *models.AttemptEntity) error {
	const query = `
		insert into "attempts" (
			"recipient" ,
			"account" ,
			"attempted_at" ,
			"outcome" ,
			"reason"
		) values (
			:recipient ,
			:account ,
			:attempted_at ,
			:outcome ,
			:reason
		) ;
	`

	result, err := execNamed(ctx, q, query, attempt)
	if err != nil {
		return err
	}

	if err := ensureRowsAffected(result); err != nil {
		return err
	}

	attempt.ID, err = result.LastInsertId()
	return err
}

func (attemptDao) FindDelivered(ctx context.Context, q Queryer) ([]models.Address, error) {
	const query = `
		select "recipient"
		from "attempts"
		where "outcome" = $1
		group by "recipient"
		order by min("id") asc ;
	`

	var recipients []models.Address

	if err := selectSlice(ctx, q, &recipients, query, models.OutcomeDelivered); err != nil {
		return nil, err
	}

	return recipients, nil
}

func (attemptDao) CountDeliveredSince(
	ctx context.Context,
	q Queryer,
	account models.Address,
	since time.Time,
) (int, error) {
	const query = `
		select count(*)
		from "attempts"
		where "account" = $1
		  and "outcome" = $2
		  and "attempted_at" >= $3 ;
	`

	var count int

	if err := selectOne(ctx, q, &count, query, account, models.OutcomeDelivered, since.Unix()); err != nil {
		return 0, err
	}

	return count, nil
}
