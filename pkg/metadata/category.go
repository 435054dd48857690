package metadata

import "fmt"

type Category string

const (
	CategoryComputer         Category = "COMPUTER"
	CategoryPeripheral       Category = "PERIPHERAL"
	CategoryNetworkEquipment Category = "NETWORK_EQUIPMENT"
	CategoryServerInfra      Category = "SERVER_INFRA"
	CategoryMobileDevice     Category = "MOBILE_DEVICE"
)

func Categories() []Category {
	return []Category{
		CategoryComputer,
		CategoryPeripheral,
		CategoryNetworkEquipment,
		CategoryServerInfra,
		CategoryMobileDevice,
	}
}

func NewCategory(value string) (Category, error) {
	category := Category(value)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid category: %s", value)
	}
	return category, nil
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryComputer, CategoryPeripheral, CategoryNetworkEquipment, CategoryServerInfra, CategoryMobileDevice:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// Code is the short tag used when composing seed serial numbers.
func (c Category) Code() string {
	switch c {
	case CategoryComputer:
		return "COM"
	case CategoryPeripheral:
		return "PER"
	case CategoryNetworkEquipment:
		return "NET"
	case CategoryServerInfra:
		return "SRV"
	case CategoryMobileDevice:
		return "MOB"
	default:
		return "UNK"
	}
}

// Label is the human readable name used when composing seed asset names.
func (c Category) Label() string {
	switch c {
	case CategoryComputer:
		return "Computador"
	case CategoryPeripheral:
		return "Periférico"
	case CategoryNetworkEquipment:
		return "Equipamento de rede"
	case CategoryServerInfra:
		return "Servidor"
	case CategoryMobileDevice:
		return "Dispositivo móvel"
	default:
		return "Equipamento"
	}
}
