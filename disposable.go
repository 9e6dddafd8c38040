package singleton

// Disposable is implemented by values that hold resources. Registry.Close
// closes every materialized Disposable value.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	Close() error
}
