package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_response_template",
			SQL: `SELECT id, response FROM issues
                  WHERE response NOT LIKE 'This appears to be a % related issue'`,
		},
		{
			Name: "O2_product_code_range",
			SQL: `SELECT id, product_code FROM issues
                  WHERE product_code < 0 OR product_code > 19`,
		},
		{
			Name: "O3_verdict_complete",
			SQL: `SELECT id FROM issues
                  WHERE query = '' OR product_name = '' OR response = ''`,
		},
		{
			Name: "O4_password_never_plaintext",
			SQL: `SELECT id, email FROM users
                  WHERE password_hash = '' OR password_hash NOT LIKE '$2%'`,
		},
		{
			Name: "O5_email_unique_constraint",
			SQL: `SELECT 'missing_users_email_unique' AS detail
                  WHERE NOT EXISTS (
                      SELECT 1 FROM pg_constraint
                      WHERE conname = 'users_email_key' AND contype = 'u')`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
