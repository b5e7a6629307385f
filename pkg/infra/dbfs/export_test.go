package dbfs

import "github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"

type API = dbfsAPI

func NewClientWithAPI(api API, opts ...Option) interfaces.TargetStore {
	return newClient(api, applyOptions(opts))
}
