package database

// InitSchema creates the keyspace and tables. history entries are append-only:
// nothing in the codebase issues UPDATE or DELETE against payment_history.
func InitSchema(session Sessioner) error {
	if err := session.Query(`
			CREATE KEYSPACE IF NOT EXISTS tokenforge
			WITH replication = {
				'class': 'SimpleStrategy',
				'replication_factor': 1
			}`).Exec(); err != nil {
		return err
	}

	if err := session.Query(`
		CREATE TABLE IF NOT EXISTS tokenforge.recurring_payments (
			id text PRIMARY KEY,
			recipient text,
			amount text,
			token_address text,
			token_symbol text,
			token_decimals int,
			memo text,
			interval_tag text,
			interval_seconds bigint,
			next_payment_time bigint,
			last_payment_time bigint,
			payment_count bigint,
			total_paid text,
			status text,
			created_at bigint,
			creator text
		)`).Exec(); err != nil {
		return err
	}

	if err := session.Query(`
		CREATE TABLE IF NOT EXISTS tokenforge.payment_history (
			payment_id text,
			entry_id text,
			transaction_hash text,
			amount text,
			timestamp bigint,
			status text,
			error_code text,
			PRIMARY KEY (payment_id, timestamp, entry_id)
		) WITH CLUSTERING ORDER BY (timestamp ASC)`).Exec(); err != nil {
		return err
	}

	if err := session.Query(`
		CREATE TABLE IF NOT EXISTS tokenforge.deployed_tokens (
			address text PRIMARY KEY,
			name text,
			symbol text,
			decimals int,
			total_supply text,
			creator text,
			metadata_uri text,
			deployed_at bigint,
			transaction_hash text
		)`).Exec(); err != nil {
		return err
	}

	return nil
}
