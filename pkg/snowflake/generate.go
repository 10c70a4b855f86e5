package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once

	errBadNodeID      = errors.New("snowflake: machine id and datacenter id must be in [0, 31]")
	errNotInitialized = errors.New("snowflake: generator not initialized")
)

// Init 组装节点号：高 5 位 datacenter，低 5 位 machine。重复调用返回 nil
func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		if machineID < 0 || machineID > 31 || dataCenterID < 0 || dataCenterID > 31 {
			initErr = errBadNodeID
			return
		}

		n, err := snowflake.NewNode(dataCenterID<<5 | machineID)
		if err != nil {
			initErr = err
			return
		}
		node = n
	})

	return initErr
}

func NextID() (int64, error) {
	if node == nil {
		return 0, errNotInitialized
	}
	return node.Generate().Int64(), nil
}
